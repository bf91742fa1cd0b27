package ingredient

import (
	"context"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/entities"
)

type (
	IngredientRepository interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uint) ([]entities.Ingredient, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, namePrefix string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	query := r.db.WithContext(ctx).Order("name asc")
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", namePrefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error) {
	var ing entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetIngredientsByIDs(ctx context.Context, ids []uint) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
