package tag

import (
	"context"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/entities"
)

type (
	TagRepository interface {
		GetTags(ctx context.Context) ([]entities.Tag, error)
		GetTagByID(ctx context.Context, id uint) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uint) ([]entities.Tag, error)
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTags(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id uint) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
