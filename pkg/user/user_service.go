package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/entities"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils/mailing"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils/storage"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/jwt"
)

const resetTokenLifetime = 15 * time.Minute

type (
	// AuthorRecipes is the slice of the recipe repository the
	// subscriptions listing needs; wired with recipe.RecipeRepository.
	AuthorRecipes interface {
		GetRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error)
	}

	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.UserResponse, int64, error)
		GetUserDetail(ctx context.Context, userID, viewerID string) (domain.UserResponse, error)
		UpdateAvatar(ctx context.Context, req domain.UpdateAvatarRequest, userID string) (string, error)
		RemoveAvatar(ctx context.Context, userID string) error
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error

		Subscribe(ctx context.Context, targetID, userID string, recipesLimit int) (domain.UserWithRecipesResponse, error)
		Unsubscribe(ctx context.Context, targetID, userID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.UserWithRecipesResponse, int64, error)
	}

	userService struct {
		userRepository UserRepository
		authorRecipes  AuthorRecipes
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(
	userRepository UserRepository,
	authorRecipes AuthorRecipes,
	jwtService jwt.JWTService,
	s3 storage.AwsS3,
) UserService {
	return &userService{
		userRepository: userRepository,
		authorRecipes:  authorRecipes,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	emailTaken, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if emailTaken {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}

	username := req.Username
	if username == "" {
		username, err = s.usernameFromEmail(ctx, req.Email)
		if err != nil {
			return domain.UserResponse{}, err
		}
	} else {
		taken, err := s.userRepository.UsernameExists(ctx, username)
		if err != nil {
			return domain.UserResponse{}, err
		}
		if taken {
			return domain.UserResponse{}, domain.ErrUsernameAlreadyExists
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := entities.User{
		Username:  username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		return domain.UserResponse{}, err
	}

	return toUserResponse(&user, false), nil
}

// usernameFromEmail derives a unique username from the email local part,
// appending a numeric suffix on collisions.
func (s *userService) usernameFromEmail(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	candidate := base
	for i := 1; ; i++ {
		taken, err := s.userRepository.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateToken(strconv.FormatUint(uint64(user.ID), 10))
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	viewer := parseViewer(viewerID)
	responses := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		subscribed := false
		if viewer != 0 {
			subscribed, err = s.userRepository.IsFollowing(ctx, viewer, users[i].ID)
			if err != nil {
				return nil, 0, err
			}
		}
		responses = append(responses, toUserResponse(&users[i], subscribed))
	}
	return responses, count, nil
}

func (s *userService) GetUserDetail(ctx context.Context, userID, viewerID string) (domain.UserResponse, error) {
	id, err := utils.ParseID(userID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	subscribed := false
	if viewer := parseViewer(viewerID); viewer != 0 {
		subscribed, err = s.userRepository.IsFollowing(ctx, viewer, user.ID)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}
	return toUserResponse(user, subscribed), nil
}

func (s *userService) UpdateAvatar(ctx context.Context, req domain.UpdateAvatarRequest, userID string) (string, error) {
	id, err := utils.ParseID(userID)
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("avatar-%d", user.ID)
	objectKey, err := s.s3.UploadBase64(ctx, fileName, req.Avatar, "users/avatars", storage.AllowImage...)
	if err != nil {
		return "", err
	}

	user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	return user.AvatarURL, nil
}

func (s *userService) RemoveAvatar(ctx context.Context, userID string) error {
	id, err := utils.ParseID(userID)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user.AvatarURL == "" {
		return domain.ErrAvatarNotFound
	}

	if objectKey := s.s3.GetObjectKeyFromLink(user.AvatarURL); objectKey != "" {
		if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
			return err
		}
	}

	user.AvatarURL = ""
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	id, err := utils.ParseID(userID)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrPasswordWrong
	}
	if req.NewPassword == req.CurrentPassword {
		return domain.ErrPasswordNotChanged
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateResetToken(user.Email, resetTokenLifetime)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf(
		"%s/reset_password?token=%s",
		strings.TrimSuffix(utils.GetConfig("APP_URL"), "/"),
		token,
	)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Follow <a href=%q>this link</a> to reset your password. The link expires in %d minutes.</p>",
		user.FirstName, resetURL, int(resetTokenLifetime.Minutes()),
	)
	return mailing.SendMail(user.Email, "Foodgram password reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.jwtService.ValidateResetToken(req.Token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) Subscribe(ctx context.Context, targetID, userID string, recipesLimit int) (domain.UserWithRecipesResponse, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return domain.UserWithRecipesResponse{}, err
	}
	target, err := utils.ParseID(targetID)
	if err != nil {
		return domain.UserWithRecipesResponse{}, domain.ErrUserNotFound
	}
	if uid == target {
		return domain.UserWithRecipesResponse{}, domain.ErrSelfFollow
	}

	author, err := s.userRepository.GetUserByID(ctx, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserWithRecipesResponse{}, domain.ErrUserNotFound
		}
		return domain.UserWithRecipesResponse{}, err
	}

	following, err := s.userRepository.IsFollowing(ctx, uid, target)
	if err != nil {
		return domain.UserWithRecipesResponse{}, err
	}
	if following {
		return domain.UserWithRecipesResponse{}, domain.ErrAlreadyFollowing
	}

	if err := s.userRepository.CreateFollow(ctx, uid, target); err != nil {
		return domain.UserWithRecipesResponse{}, err
	}

	return s.withRecipes(ctx, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, targetID, userID string) error {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return err
	}
	target, err := utils.ParseID(targetID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	removed, err := s.userRepository.DeleteFollow(ctx, uid, target)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFollowing
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.UserWithRecipesResponse, int64, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return nil, 0, err
	}

	authors, count, err := s.userRepository.GetFollowedAuthors(ctx, uid, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.UserWithRecipesResponse, 0, len(authors))
	for i := range authors {
		res, err := s.withRecipes(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, res)
	}
	return responses, count, nil
}

func (s *userService) withRecipes(ctx context.Context, author *entities.User, recipesLimit int) (domain.UserWithRecipesResponse, error) {
	recipes, err := s.authorRecipes.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.UserWithRecipesResponse{}, err
	}
	count, err := s.authorRecipes.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return domain.UserWithRecipesResponse{}, err
	}

	short := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, recipe := range recipes {
		short = append(short, domain.RecipeShortResponse{
			ID:          recipe.ID,
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.UserWithRecipesResponse{
		UserResponse: toUserResponse(author, true),
		Recipes:      short,
		RecipesCount: count,
	}, nil
}

func parseViewer(viewerID string) uint {
	if viewerID == "" {
		return 0
	}
	id, err := utils.ParseID(viewerID)
	if err != nil {
		return 0
	}
	return id
}

func toUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.AvatarURL,
		IsSubscribed: isSubscribed,
	}
}
