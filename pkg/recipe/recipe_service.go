package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/entities"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils/storage"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/ingredient"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/shoppinglist"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/shortlink"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/tag"
)

type (
	// UserProvider is the slice of the user repository the recipe
	// feature needs; wired with user.UserRepository.
	UserProvider interface {
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		IsFollowing(ctx context.Context, userID, followingID uint) (bool, error)
	}

	RecipeService interface {
		GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error

		FavoriteRecipe(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error

		GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error)
		ResolveShortCode(ctx context.Context, code string) (uint, error)
		DownloadShoppingCart(ctx context.Context, userID, format string) ([]byte, string, string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		users                UserProvider
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	users UserProvider,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		users:                users,
		s3:                   s3,
	}
}

// viewer resolves the optional authenticated caller; an empty id means an
// anonymous request and yields 0.
func viewer(viewerID string) uint {
	if viewerID == "" {
		return 0
	}
	id, err := utils.ParseID(viewerID)
	if err != nil {
		return 0
	}
	return id
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID string) ([]domain.RecipeResponse, int64, error) {
	uid := viewer(viewerID)
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, req, uid)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		res, err := s.toRecipeResponse(ctx, &recipes[i], uid)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, res)
	}
	return responses, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	id, err := utils.ParseID(recipeID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, recipe, viewer(viewerID))
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	tags, rows, err := s.resolveTagsAndIngredients(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrRecipeImageRequired
	}
	objectKey, err := s.s3.UploadBase64(ctx, fmt.Sprintf("recipe-%d", uid), req.Image, "recipes", storage.AllowImage...)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := entities.Recipe{
		AuthorID:    uid,
		Name:        req.Name,
		ImageURL:    s.s3.GetPublicLinkKey(objectKey),
		Text:        req.Text,
		CookingTime: req.CookingTime,
		PubDate:     time.Now(),
		Tags:        tags,
		Ingredients: rows,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, created, uid)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	id, err := utils.ParseID(recipeID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID != uid {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	tags, rows, err := s.resolveTagsAndIngredients(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if req.Image != "" {
		objectKey, err := s.s3.UploadBase64(ctx, fmt.Sprintf("recipe-%d", recipe.ID), req.Image, "recipes", storage.AllowImage...)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tags, rows); err != nil {
		return domain.RecipeResponse{}, err
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, updated, uid)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return err
	}
	id, err := utils.ParseID(recipeID)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != uid {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, uid, err := s.userRecipePair(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, uid, recipe.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if favorited {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
	}

	if err := s.recipeRepository.AddFavorite(ctx, uid, recipe.ID); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	recipe, uid, err := s.userRecipePair(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	removed, err := s.recipeRepository.RemoveFavorite(ctx, uid, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, uid, err := s.userRecipePair(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, uid, recipe.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if inCart {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyInShoppingCart
	}

	if err := s.recipeRepository.AddToCart(ctx, uid, recipe.ID); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error {
	recipe, uid, err := s.userRecipePair(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	removed, err := s.recipeRepository.RemoveFromCart(ctx, uid, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotInShoppingCart
	}
	return nil
}

func (s *recipeService) GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error) {
	id, err := utils.ParseID(recipeID)
	if err != nil {
		return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, id)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	if !exists {
		return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
	}

	appURL := strings.TrimSuffix(utils.GetConfig("APP_URL"), "/")
	return domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s%s", appURL, shortlink.Prefix, shortlink.Encode(uint64(id))),
	}, nil
}

// ResolveShortCode maps an inbound short code to a recipe id. Malformed
// codes and codes of missing recipes both come back as not-found so the
// redirect handler never reports a server error for garbage input.
func (s *recipeService) ResolveShortCode(ctx context.Context, code string) (uint, error) {
	decoded, err := shortlink.Decode(shortlink.StripPrefix(code))
	if err != nil {
		return 0, domain.ErrRecipeNotFound
	}

	id := uint(decoded)
	exists, err := s.recipeRepository.RecipeExists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrRecipeNotFound
	}
	return id, nil
}

func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID, format string) ([]byte, string, string, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.users.GetUserByID(ctx, uid)
	if err != nil {
		return nil, "", "", err
	}

	recipes, err := s.recipeRepository.GetCartRecipes(ctx, uid)
	if err != nil {
		return nil, "", "", err
	}

	var lines []shoppinglist.IngredientLine
	sources := make([]shoppinglist.RecipeSource, 0, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]
		for _, row := range recipe.Ingredients {
			if row.Ingredient == nil {
				continue
			}
			lines = append(lines, shoppinglist.IngredientLine{
				Name:            row.Ingredient.Name,
				MeasurementUnit: row.Ingredient.MeasurementUnit,
				Amount:          row.Amount,
			})
		}
		author := ""
		if recipe.Author != nil {
			author = recipe.Author.Username
		}
		sources = append(sources, shoppinglist.RecipeSource{Name: recipe.Name, Author: author})
	}

	report := shoppinglist.NewReport(user.FullName(), time.Now(), lines, sources)
	content, contentType, err := report.Render(format)
	if err != nil {
		return nil, "", "", err
	}

	extension := format
	if extension == "" {
		extension = shoppinglist.FormatText
	}
	return content, contentType, "shopping_list." + extension, nil
}

func (s *recipeService) userRecipePair(ctx context.Context, recipeID, userID string) (*entities.Recipe, uint, error) {
	uid, err := utils.ParseID(userID)
	if err != nil {
		return nil, 0, err
	}
	id, err := utils.ParseID(recipeID)
	if err != nil {
		return nil, 0, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrRecipeNotFound
		}
		return nil, 0, err
	}
	return recipe, uid, nil
}

func (s *recipeService) resolveTagsAndIngredients(ctx context.Context, tagIDs []uint, items []domain.IngredientAmountRequest) ([]entities.Tag, []entities.IngredientRecipe, error) {
	if len(tagIDs) == 0 {
		return nil, nil, domain.ErrNoTags
	}
	if len(items) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, domain.ErrDuplicateTag
		}
		seenTags[id] = true
	}
	seenIngredients := make(map[uint]bool, len(items))
	for _, item := range items {
		if seenIngredients[item.ID] {
			return nil, nil, domain.ErrDuplicateIngredient
		}
		seenIngredients[item.ID] = true
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, domain.ErrTagNotFound
	}

	ingredientIDs := make([]uint, 0, len(items))
	for _, item := range items {
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(items) {
		return nil, nil, domain.ErrIngredientNotFound
	}

	rows := make([]entities.IngredientRecipe, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.IngredientRecipe{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return tags, rows, nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, viewerID uint) (domain.RecipeResponse, error) {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	ingredients := make([]domain.IngredientInRecipeResponse, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		res := domain.IngredientInRecipeResponse{
			ID:     row.IngredientID,
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			res.Name = row.Ingredient.Name
			res.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, res)
	}

	author := domain.UserResponse{ID: recipe.AuthorID}
	if recipe.Author != nil {
		author.Email = recipe.Author.Email
		author.Username = recipe.Author.Username
		author.FirstName = recipe.Author.FirstName
		author.LastName = recipe.Author.LastName
		author.Avatar = recipe.Author.AvatarURL
	}

	response := domain.RecipeResponse{
		ID:          recipe.ID,
		Tags:        tags,
		Author:      author,
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}

	if viewerID != 0 {
		favorited, err := s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		inCart, err := s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		subscribed, err := s.users.IsFollowing(ctx, viewerID, recipe.AuthorID)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		response.IsFavorited = favorited
		response.IsInShoppingCart = inCart
		response.Author.IsSubscribed = subscribed
	}

	return response, nil
}

func toRecipeShortResponse(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
