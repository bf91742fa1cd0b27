package entities

import "time"

type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `json:"author_id"`
	Name        string    `gorm:"size:256" json:"name"`
	ImageURL    string    `json:"image"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `json:"cooking_time"`
	PubDate     time.Time `gorm:"type:timestamp;index" json:"pub_date"`

	Author      *User              `gorm:"foreignKey:AuthorID"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []IngredientRecipe `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Timestamp
}

// IngredientRecipe links a recipe to an ingredient with a positive amount.
// A (recipe, ingredient) pair appears at most once.
type IngredientRecipe struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

type Favorite struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uint `gorm:"uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type ShoppingCart struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID uint `gorm:"uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
