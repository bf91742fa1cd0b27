package ingredient

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
		GetIngredientDetail(ctx context.Context, ingredientID string) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		responses = append(responses, domain.IngredientResponse{
			ID:              ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
		})
	}
	return responses, nil
}

func (s *ingredientService) GetIngredientDetail(ctx context.Context, ingredientID string) (domain.IngredientResponse, error) {
	id, err := utils.ParseID(ingredientID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNotFound
	}

	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	}, nil
}
