package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/api/presenters"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		FavoriteRecipe(c *fiber.Ctx) error
		UnfavoriteRecipe(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		GetShortLink(c *fiber.Ctx) error
		ResolveShortLink(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	viewerID := c.Locals("user_id").(string)

	page, limit := pagination(c)
	req := domain.RecipeListRequest{
		Page:             page,
		Limit:            limit,
		IsFavorited:      c.QueryBool("is_favorited", false),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart", false),
	}
	if author := c.Query("author", ""); author != "" {
		if id, err := utils.ParseID(author); err == nil {
			req.Author = id
		}
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		req.TagSlugs = append(req.TagSlugs, string(slug))
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), req, viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	viewerID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecipeDetail(c.Context(), c.Params("id"), viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) FavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.FavoriteRecipe(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFavorite)
}

func (h *recipeHandler) UnfavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.UnfavoriteRecipe(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUnfavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnfavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.AddToShoppingCart(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddToCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.RemoveFromShoppingCart(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveFromCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFromCart)
}

func (h *recipeHandler) GetShortLink(c *fiber.Ctx) error {
	res, err := h.recipeService.GetShortLink(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetShortLink, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShortLink)
}

// ResolveShortLink redirects a short code to the recipe page.
func (h *recipeHandler) ResolveShortLink(c *fiber.Ctx) error {
	id, err := h.recipeService.ResolveShortCode(c.Context(), c.Params("code"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return c.Redirect(fmt.Sprintf("/recipes/%s/", strconv.FormatUint(uint64(id), 10)), fiber.StatusFound)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	format := strings.ToLower(c.Query("format", ""))

	content, contentType, fileName, err := h.recipeService.DownloadShoppingCart(c.Context(), userID, format)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDownloadCart, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Status(fiber.StatusOK).Send(content)
}
