package tag

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTagDetail(ctx context.Context, tagID string) (domain.TagResponse, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, domain.TagResponse{
			ID:   tag.ID,
			Name: tag.Name,
			Slug: tag.Slug,
		})
	}
	return responses, nil
}

func (s *tagService) GetTagDetail(ctx context.Context, tagID string) (domain.TagResponse, error) {
	id, err := utils.ParseID(tagID)
	if err != nil {
		return domain.TagResponse{}, domain.ErrTagNotFound
	}

	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}

	return domain.TagResponse{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}, nil
}
