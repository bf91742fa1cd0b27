package domain

import "errors"

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessFavorite         = "recipe added to favorites"
	MessageSuccessUnfavorite       = "recipe removed from favorites"
	MessageSuccessAddToCart        = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"
	MessageSuccessGetShortLink     = "success get short link"
	MessageSuccessDownloadCart     = "success download shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to add recipe to favorites"
	MessageFailedUnfavorite      = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShortLink    = "failed to get short link"
	MessageFailedDownloadCart    = "failed to download shopping cart"

	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrNotRecipeAuthor       = errors.New("only the author can modify this recipe")
	ErrRecipeImageRequired   = errors.New("recipe image is required")
	ErrAlreadyFavorited      = errors.New("recipe is already in favorites")
	ErrNotFavorited          = errors.New("recipe is not in favorites")
	ErrAlreadyInShoppingCart = errors.New("recipe is already in the shopping cart")
	ErrNotInShoppingCart     = errors.New("recipe is not in the shopping cart")
)

type (
	IngredientAmountRequest struct {
		ID     uint `json:"id" validate:"required"`
		Amount int  `json:"amount" validate:"required,min=1"`
	}

	CreateRecipeRequest struct {
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,dive"`
		Tags        []uint                    `json:"tags" validate:"required"`
		Image       string                    `json:"image" validate:"required"`
		Name        string                    `json:"name" validate:"required,max=256"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
	}

	UpdateRecipeRequest struct {
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,dive"`
		Tags        []uint                    `json:"tags" validate:"required"`
		Image       string                    `json:"image" validate:"omitempty"`
		Name        string                    `json:"name" validate:"required,max=256"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
	}

	// RecipeListRequest carries pagination and the filter set of the
	// recipe listing endpoint. Favorited/cart filters only apply to
	// authenticated callers.
	RecipeListRequest struct {
		Page             int
		Limit            int
		Author           uint
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	IngredientInRecipeResponse struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               uint                         `json:"id"`
		Tags             []TagResponse                `json:"tags"`
		Author           UserResponse                 `json:"author"`
		Ingredients      []IngredientInRecipeResponse `json:"ingredients"`
		IsFavorited      bool                         `json:"is_favorited"`
		IsInShoppingCart bool                         `json:"is_in_shopping_cart"`
		Name             string                       `json:"name"`
		Image            string                       `json:"image"`
		Text             string                       `json:"text"`
		CookingTime      int                          `json:"cooking_time"`
	}

	RecipeShortResponse struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)
