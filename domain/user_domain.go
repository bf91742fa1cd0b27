package domain

import "errors"

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login success"
	MessageSuccessLogout           = "logout success"
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessGetUserDetail    = "success get user detail"
	MessageSuccessUpdateAvatar     = "avatar updated successfully"
	MessageSuccessRemoveAvatar     = "avatar removed successfully"
	MessageSuccessSetPassword      = "password changed successfully"
	MessageSuccessForgotPassword   = "password reset email sent"
	MessageSuccessResetPassword    = "password reset successfully"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUsers         = "failed to get users"
	MessageFailedGetUserDetail    = "failed to get user detail"
	MessageFailedUpdateAvatar     = "failed to update avatar"
	MessageFailedRemoveAvatar     = "failed to remove avatar"
	MessageFailedSetPassword      = "failed to change password"
	MessageFailedForgotPassword   = "failed to send password reset email"
	MessageFailedResetPassword    = "failed to reset password"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrCredentialsInvalid    = errors.New("wrong email or password")
	ErrPasswordWrong         = errors.New("current password is incorrect")
	ErrPasswordNotChanged    = errors.New("new password must differ from the current one")
	ErrAvatarNotFound        = errors.New("user has no avatar")
	ErrSelfFollow            = errors.New("cannot subscribe to yourself")
	ErrAlreadyFollowing      = errors.New("already subscribed to this author")
	ErrNotFollowing          = errors.New("not subscribed to this author")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"omitempty,max=150"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	UpdateAvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	UserResponse struct {
		ID           uint   `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Avatar       string `json:"avatar"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	// UserWithRecipesResponse is the subscriptions listing entry: the
	// followed author plus a short form of their recipes.
	UserWithRecipesResponse struct {
		UserResponse
		Recipes      []RecipeShortResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
