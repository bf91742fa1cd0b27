package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/api/presenters"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/jwt"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// tokenFromHeader accepts both "Bearer <token>" and "Token <token>" schemes.
func tokenFromHeader(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}
	return header
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromHeader(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		userID, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and falls through as anonymous otherwise. user_id is always set so
// handlers can read it without a presence check.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := ""
		if token := tokenFromHeader(c); token != "" {
			if id, err := jwtService.GetUserIDByToken(token); err == nil {
				userID = id
			}
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}
