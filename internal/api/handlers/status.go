package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
)

// statusFor maps service errors to HTTP status codes. Anything not
// recognized is treated as a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrAvatarNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeAuthor):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrPasswordWrong),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
