package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/api/presenters"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/user"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		GetUserDetail(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateAvatar(c *fiber.Ctx) error
		RemoveAvatar(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

// Logout exists for API symmetry; tokens are stateless so there is
// nothing to revoke server side.
func (h *userHandler) Logout(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	viewerID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	users, count, err := h.userService.GetUsers(c.Context(), page, limit, viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) GetUserDetail(c *fiber.Ctx) error {
	viewerID := c.Locals("user_id").(string)
	userID := c.Params("id")

	res, err := h.userService.GetUserDetail(c.Context(), userID, viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUserDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.GetUserDetail(c.Context(), userID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUserDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}

func (h *userHandler) UpdateAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateAvatarRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAvatar, err)
	}

	avatarURL, err := h.userService.UpdateAvatar(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateAvatar, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"avatar": avatarURL}, fiber.StatusOK, domain.MessageSuccessUpdateAvatar)
}

func (h *userHandler) RemoveAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.userService.RemoveAvatar(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveAvatar, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveAvatar)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetPassword, err)
	}

	if err := h.userService.SetPassword(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetPassword)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedForgotPassword, err)
	}

	if err := h.userService.ForgotPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedForgotPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetPassword, err)
	}

	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedResetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}

func (h *userHandler) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	targetID := c.Params("id")
	recipesLimit := recipesLimitQuery(c)

	res, err := h.userService.Subscribe(c.Context(), targetID, userID, recipesLimit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *userHandler) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	targetID := c.Params("id")

	if err := h.userService.Unsubscribe(c.Context(), targetID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUnsubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnsubscribe)
}

func (h *userHandler) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)
	recipesLimit := recipesLimitQuery(c)

	authors, count, err := h.userService.GetSubscriptions(c.Context(), userID, page, limit, recipesLimit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"authors": authors,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "6"))
	if err != nil || limit < 1 {
		limit = 6
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// recipesLimitQuery caps the short recipes embedded per author; 0 means
// no cap.
func recipesLimitQuery(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
