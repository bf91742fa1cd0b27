package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/entities"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils/storage"
)

type pair struct {
	userID   uint
	recipeID uint
}

type fakeRecipeRepository struct {
	recipes   map[uint]*entities.Recipe
	favorites map[pair]bool
	cart      map[pair]bool
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:   make(map[uint]*entities.Recipe),
		favorites: make(map[pair]bool),
		cart:      make(map[pair]bool),
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	recipe.ID = uint(len(f.recipes) + 1)
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id uint) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, _ domain.RecipeListRequest, _ uint) ([]entities.Recipe, int64, error) {
	recipes := make([]entities.Recipe, 0, len(f.recipes))
	for _, recipe := range f.recipes {
		recipes = append(recipes, *recipe)
	}
	return recipes, int64(len(recipes)), nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag, rows []entities.IngredientRecipe) error {
	recipe.Tags = tags
	recipe.Ingredients = rows
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id uint) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepository) RecipeExists(_ context.Context, id uint) (bool, error) {
	_, ok := f.recipes[id]
	return ok, nil
}

func (f *fakeRecipeRepository) GetRecipesByAuthor(_ context.Context, authorID uint, limit int) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	for _, recipe := range f.recipes {
		if recipe.AuthorID == authorID {
			recipes = append(recipes, *recipe)
		}
		if limit > 0 && len(recipes) == limit {
			break
		}
	}
	return recipes, nil
}

func (f *fakeRecipeRepository) CountRecipesByAuthor(_ context.Context, authorID uint) (int64, error) {
	var count int64
	for _, recipe := range f.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepository) AddFavorite(_ context.Context, userID, recipeID uint) error {
	f.favorites[pair{userID, recipeID}] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveFavorite(_ context.Context, userID, recipeID uint) (bool, error) {
	key := pair{userID, recipeID}
	if !f.favorites[key] {
		return false, nil
	}
	delete(f.favorites, key)
	return true, nil
}

func (f *fakeRecipeRepository) IsFavorited(_ context.Context, userID, recipeID uint) (bool, error) {
	return f.favorites[pair{userID, recipeID}], nil
}

func (f *fakeRecipeRepository) AddToCart(_ context.Context, userID, recipeID uint) error {
	f.cart[pair{userID, recipeID}] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveFromCart(_ context.Context, userID, recipeID uint) (bool, error) {
	key := pair{userID, recipeID}
	if !f.cart[key] {
		return false, nil
	}
	delete(f.cart, key)
	return true, nil
}

func (f *fakeRecipeRepository) IsInCart(_ context.Context, userID, recipeID uint) (bool, error) {
	return f.cart[pair{userID, recipeID}], nil
}

func (f *fakeRecipeRepository) GetCartRecipes(_ context.Context, userID uint) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	for id, recipe := range f.recipes {
		if f.cart[pair{userID, id}] {
			recipes = append(recipes, *recipe)
		}
	}
	return recipes, nil
}

type fakeUserProvider struct {
	users map[uint]*entities.User
}

func (f *fakeUserProvider) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserProvider) IsFollowing(_ context.Context, _, _ uint) (bool, error) {
	return false, nil
}

func newTestService(repo *fakeRecipeRepository, users *fakeUserProvider) RecipeService {
	return NewRecipeService(repo, nil, nil, users, storage.AwsS3{})
}

func seedRecipe(repo *fakeRecipeRepository, id, authorID uint, name string) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:       id,
		AuthorID: authorID,
		Name:     name,
		Author:   &entities.User{ID: authorID, Username: "author"},
	}
	repo.recipes[id] = recipe
	return recipe
}

func TestFavoriteRecipe(t *testing.T) {
	repo := newFakeRecipeRepository()
	seedRecipe(repo, 1, 2, "Pancakes")
	service := newTestService(repo, &fakeUserProvider{})

	res, err := service.FavoriteRecipe(context.Background(), "1", "5")
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.ID)
	assert.Equal(t, "Pancakes", res.Name)

	_, err = service.FavoriteRecipe(context.Background(), "1", "5")
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestUnfavoriteRecipe(t *testing.T) {
	repo := newFakeRecipeRepository()
	seedRecipe(repo, 1, 2, "Pancakes")
	service := newTestService(repo, &fakeUserProvider{})

	err := service.UnfavoriteRecipe(context.Background(), "1", "5")
	assert.ErrorIs(t, err, domain.ErrNotFavorited)

	_, err = service.FavoriteRecipe(context.Background(), "1", "5")
	require.NoError(t, err)
	assert.NoError(t, service.UnfavoriteRecipe(context.Background(), "1", "5"))
}

func TestFavoriteMissingRecipe(t *testing.T) {
	service := newTestService(newFakeRecipeRepository(), &fakeUserProvider{})

	_, err := service.FavoriteRecipe(context.Background(), "99", "5")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestShoppingCartMembership(t *testing.T) {
	repo := newFakeRecipeRepository()
	seedRecipe(repo, 1, 2, "Soup")
	service := newTestService(repo, &fakeUserProvider{})

	_, err := service.AddToShoppingCart(context.Background(), "1", "5")
	require.NoError(t, err)

	_, err = service.AddToShoppingCart(context.Background(), "1", "5")
	assert.ErrorIs(t, err, domain.ErrAlreadyInShoppingCart)

	require.NoError(t, service.RemoveFromShoppingCart(context.Background(), "1", "5"))
	assert.ErrorIs(t, service.RemoveFromShoppingCart(context.Background(), "1", "5"), domain.ErrNotInShoppingCart)
}

func TestGetShortLink(t *testing.T) {
	t.Setenv("APP_URL", "https://foodgram.example.org")
	repo := newFakeRecipeRepository()
	seedRecipe(repo, 125, 2, "Borscht")
	service := newTestService(repo, &fakeUserProvider{})

	res, err := service.GetShortLink(context.Background(), "125")
	require.NoError(t, err)
	assert.Equal(t, "https://foodgram.example.org/s/r-21", res.ShortLink)

	_, err = service.GetShortLink(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestResolveShortCode(t *testing.T) {
	repo := newFakeRecipeRepository()
	seedRecipe(repo, 125, 2, "Borscht")
	service := newTestService(repo, &fakeUserProvider{})

	for _, code := range []string{"r-21", "21"} {
		id, err := service.ResolveShortCode(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, uint(125), id)
	}

	_, err := service.ResolveShortCode(context.Background(), "r-!!")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = service.ResolveShortCode(context.Background(), "r-ZZZZ")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDownloadShoppingCartAggregates(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := &fakeUserProvider{users: map[uint]*entities.User{
		5: {ID: 5, FirstName: "Alice", LastName: "Smith"},
	}}

	flour := &entities.Ingredient{ID: 1, Name: "Flour", MeasurementUnit: "g"}
	egg := &entities.Ingredient{ID: 2, Name: "Egg", MeasurementUnit: "pc"}

	pancakes := seedRecipe(repo, 1, 2, "Pancakes")
	pancakes.Ingredients = []entities.IngredientRecipe{
		{IngredientID: 1, Amount: 200, Ingredient: flour},
		{IngredientID: 2, Amount: 2, Ingredient: egg},
	}
	bread := seedRecipe(repo, 2, 2, "Bread")
	bread.Ingredients = []entities.IngredientRecipe{
		{IngredientID: 1, Amount: 300, Ingredient: flour},
	}
	repo.cart[pair{5, 1}] = true
	repo.cart[pair{5, 2}] = true

	service := newTestService(repo, users)

	content, contentType, fileName, err := service.DownloadShoppingCart(context.Background(), "5", "txt")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.Equal(t, "shopping_list.txt", fileName)

	text := string(content)
	assert.Contains(t, text, "Shopping list for: Alice Smith")
	assert.Contains(t, text, "Flour - 500 g")
	assert.Contains(t, text, "Egg - 2 pc")
}

func TestDownloadShoppingCartEmpty(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := &fakeUserProvider{users: map[uint]*entities.User{
		5: {ID: 5, FirstName: "Alice", LastName: "Smith"},
	}}
	service := newTestService(repo, users)

	content, _, fileName, err := service.DownloadShoppingCart(context.Background(), "5", "")
	require.NoError(t, err)
	assert.Equal(t, "shopping_list.txt", fileName)
	assert.Contains(t, string(content), "Ingredients:")
}

func TestDownloadShoppingCartUnsupportedFormat(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := &fakeUserProvider{users: map[uint]*entities.User{
		5: {ID: 5},
	}}
	service := newTestService(repo, users)

	_, _, _, err := service.DownloadShoppingCart(context.Background(), "5", "pdf")
	assert.Error(t, err)
}
