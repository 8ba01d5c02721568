package bootstrap

import (
	"context"
	"log"

	"pm-studio-be/internal/config"
	"pm-studio-be/internal/controller"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/mailer"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/internal/service"
	"pm-studio-be/internal/websocket"
	"pm-studio-be/pkg/llm/factory"
	"pm-studio-be/pkg/review"

	pktNats "pm-studio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SessionController     controller.ISessionController
	DocumentController    controller.IDocumentController
	ReviewController      controller.IReviewController
	PhaseController       controller.IPhaseController
	RosterController      controller.IRosterController
	ChatController        controller.IChatController
	FacilitatorController controller.IFacilitatorController

	// Background services (exposed for main.go to run)
	NotificationService service.INotificationService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)
	mailEnabled := cfg.SMTP.Host != "" && cfg.SMTP.Email != ""

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-memory session storage
	sessionRepo := memory.NewSessionRepository(cfg.App.SessionTTL)

	// 5. Optional infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 6. WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 7. Event pipeline
	publisher := service.NewEventPublisher(service.ExerciseEventsTopic, pubSub)
	notifService := service.NewNotificationService(
		pubSub,
		service.ExerciseEventsTopic,
		wsHub,
		natsPub,
		emailService,
		mailEnabled,
		sessionRepo,
		wsLogger,
	)

	// 8. Review pass runner
	runner := review.NewRunner(
		llmProvider,
		log.Default(),
		review.WithDelay(cfg.Review.RequestDelay),
	)

	// 9. Domain services
	sessionService := service.NewSessionService(sessionRepo, publisher, cfg.App.SessionTTL, sysLogger)
	reviewService := service.NewReviewService(sessionRepo, runner, publisher, sysLogger)
	phaseService := service.NewPhaseService(sessionRepo, publisher, sysLogger)
	chatService := service.NewChatService(sessionRepo, llmProvider, sysLogger)
	rosterService := service.NewRosterService(sessionRepo)
	facilitatorService := service.NewFacilitatorService(cfg.App.FacilitatorHash, cfg.App.SessionTTL, sysLogger)

	return &Container{
		SessionController:     controller.NewSessionController(sessionService),
		DocumentController:    controller.NewDocumentController(sessionService),
		ReviewController:      controller.NewReviewController(reviewService),
		PhaseController:       controller.NewPhaseController(phaseService),
		RosterController:      controller.NewRosterController(rosterService),
		ChatController:        controller.NewChatController(chatService),
		FacilitatorController: controller.NewFacilitatorController(facilitatorService),

		NotificationService: notifService,
		WebSocketHub:        wsHub,
	}
}
