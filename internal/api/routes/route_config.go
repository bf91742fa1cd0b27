package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Konstantin-Kleinikov/foodgram/internal/api/handlers"
	"github.com/Konstantin-Kleinikov/foodgram/internal/middleware"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Tags()
	c.Ingredients()
	c.Recipes()
	c.ShortLinks()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	// fixed paths before the :id wildcard
	{
		users.Post("", c.UserHandler.Register)
		users.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUsers)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		users.Put("/me/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateAvatar)
		users.Delete("/me/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.RemoveAvatar)
		users.Post("/set_password", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.SetPassword)
		users.Post("/forgot_password", c.UserHandler.ForgotPassword)
		users.Post("/reset_password", c.UserHandler.ResetPassword)
		users.Get("/subscriptions", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetSubscriptions)
		users.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUserDetail)
		users.Post("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/tags")
	{
		tags.Get("", c.TagHandler.GetTags)
		tags.Get("/:id", c.TagHandler.GetTagDetail)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetail)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	// download must come before the :id wildcard
	{
		recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
		recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
		recipes.Get("/download_shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DownloadShoppingCart)
		recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
		recipes.Get("/:id/get-link", c.RecipeHandler.GetShortLink)
		recipes.Post("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.FavoriteRecipe)
		recipes.Delete("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UnfavoriteRecipe)
		recipes.Post("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) ShortLinks() {
	c.App.Get("/s/:code", c.RecipeHandler.ResolveShortLink)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
