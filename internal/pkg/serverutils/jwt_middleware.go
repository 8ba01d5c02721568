package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Never sign with an empty key. Matches the documented dev default.
		secret = "dev-only-secret"
	}
	return []byte(secret)
}

// NewSessionToken mints the bearer token returned when an exercise starts.
func NewSessionToken(sessionId string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionId,
		"role":       "participant",
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// NewFacilitatorToken mints the token for the facilitator surface.
func NewFacilitatorToken(ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "facilitator",
		"exp":  time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// SessionIdFromToken validates a raw token string (no Bearer prefix) and
// returns the session id. Used by the websocket upgrade, which passes the
// token as a query parameter.
func SessionIdFromToken(raw string) (string, bool) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sessionId, _ := claims["session_id"].(string)
	return sessionId, sessionId != ""
}

func parseBearer(ctx *fiber.Ctx) (jwt.MapClaims, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, false
	}
	token, err := jwt.Parse(authHeader[7:], func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// JwtMiddleware protects participant routes and stores the session id in
// ctx.Locals("session_id").
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, ok := parseBearer(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}
	sessionId, _ := claims["session_id"].(string)
	if sessionId == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}
	ctx.Locals("session_id", sessionId)
	return ctx.Next()
}

// FacilitatorMiddleware protects the facilitator surface.
func FacilitatorMiddleware(ctx *fiber.Ctx) error {
	claims, ok := parseBearer(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}
	if role, _ := claims["role"].(string); role != "facilitator" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Facilitator access required"})
	}
	return ctx.Next()
}
