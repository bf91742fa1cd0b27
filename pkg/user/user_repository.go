package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/entities"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		UsernameExists(ctx context.Context, username string) (bool, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		GetUsers(ctx context.Context, page, limit int) ([]entities.User, int64, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		CreateFollow(ctx context.Context, userID, followingID uint) error
		DeleteFollow(ctx context.Context, userID, followingID uint) (bool, error)
		IsFollowing(ctx context.Context, userID, followingID uint) (bool, error)
		GetFollowedAuthors(ctx context.Context, userID uint, page, limit int) ([]entities.User, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetUsers(ctx context.Context, page, limit int) ([]entities.User, int64, error) {
	var users []entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("username asc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CreateFollow(ctx context.Context, userID, followingID uint) error {
	follow := entities.Follow{
		UserID:      userID,
		FollowingID: followingID,
	}
	return r.db.WithContext(ctx).Create(&follow).Error
}

func (r *userRepository) DeleteFollow(ctx context.Context, userID, followingID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&entities.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, userID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetFollowedAuthors(ctx context.Context, userID uint, page, limit int) ([]entities.User, int64, error) {
	var authors []entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN follows ON users.id = follows.following_id").
		Where("follows.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON users.id = follows.following_id").
		Where("follows.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("users.username asc").
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}
