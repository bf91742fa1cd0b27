package recipe

import (
	"context"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID uint) ([]entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag, rows []entities.IngredientRecipe) error
		DeleteRecipe(ctx context.Context, id uint) error
		RecipeExists(ctx context.Context, id uint) (bool, error)
		GetRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error)

		AddFavorite(ctx context.Context, userID, recipeID uint) error
		RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
		IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error)

		AddToCart(ctx context.Context, userID, recipeID uint) error
		RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error)
		IsInCart(ctx context.Context, userID, recipeID uint) (bool, error)
		GetCartRecipes(ctx context.Context, userID uint) ([]entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	// Omit("Tags.*") links existing tags without touching the tag rows.
	return r.db.WithContext(ctx).Omit("Tags.*").Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) listQuery(ctx context.Context, req domain.RecipeListRequest, viewerID uint) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if req.Author != 0 {
		query = query.Where("recipes.author_id = ?", req.Author)
	}
	if len(req.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", req.TagSlugs)
	}
	if req.IsFavorited && viewerID != 0 {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", viewerID)
	}
	if req.IsInShoppingCart && viewerID != 0 {
		query = query.
			Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", viewerID)
	}
	return query
}

func (r *recipeRepository) GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID uint) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64
	offset := (req.Page - 1) * req.Limit

	if err := r.listQuery(ctx, req, viewerID).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.listQuery(ctx, req, viewerID).
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(req.Limit).
		Order("recipes.pub_date desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag, rows []entities.IngredientRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ingredient rows are replaced wholesale on every update.
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.IngredientRecipe{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipe.ID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return tx.Omit("Tags", "Ingredients", "Author").Save(recipe).Error
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.IngredientRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, id).Error
	})
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uint) error {
	favorite := entities.Favorite{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	entry := entities.ShoppingCart{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetCartRecipes(ctx context.Context, userID uint) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	if err := r.db.WithContext(ctx).
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
		Where("shopping_carts.user_id = ?", userID).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Order("recipes.name asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
