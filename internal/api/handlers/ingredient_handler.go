package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/api/presenters"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/ingredient"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandler{ingredientService: ingredientService}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredients(c.Context(), c.Query("name", ""))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredientDetail(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredientDetail(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetIngredientDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredientDetail)
}
