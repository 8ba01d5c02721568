package service

import (
	"time"

	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type IFacilitatorService interface {
	Login(req *dto.FacilitatorLoginRequest) (*dto.FacilitatorLoginResponse, error)
	GetLogs(level string, limit, offset int) (*dto.LogListResponse, error)
}

type facilitatorService struct {
	passwordHash string
	tokenTTL     time.Duration
	logger       logger.ILogger
}

func NewFacilitatorService(passwordHash string, tokenTTL time.Duration, log logger.ILogger) IFacilitatorService {
	return &facilitatorService{
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
		logger:       log,
	}
}

func (fs *facilitatorService) Login(req *dto.FacilitatorLoginRequest) (*dto.FacilitatorLoginResponse, error) {
	if fs.passwordHash == "" {
		return nil, serverutils.NewApiError(fiber.StatusServiceUnavailable, "facilitator access is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(fs.passwordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewApiError(fiber.StatusUnauthorized, "invalid password")
	}

	token, err := serverutils.NewFacilitatorToken(fs.tokenTTL)
	if err != nil {
		return nil, err
	}

	fs.logger.Info("Facilitator", "Facilitator logged in", nil)
	return &dto.FacilitatorLoginResponse{Token: token}, nil
}

func (fs *facilitatorService) GetLogs(level string, limit, offset int) (*dto.LogListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := fs.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "could not read logs")
	}
	return &dto.LogListResponse{Entries: entries}, nil
}
