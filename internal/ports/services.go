package ports

import (
	"context"

	"github.com/recipekeeper/core/internal/domain/entities"
)

// RecipeService defines the interface for recipe business operations
type RecipeService interface {
	ListRecipes(ctx context.Context) ([]entities.Recipe, error)
	CreateRecipe(ctx context.Context, req RecipeRequest) (*entities.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*entities.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, req RecipeRequest) (*entities.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error
}

// Request/Response Types

// RecipeRequest is the payload accepted by create and update.
// ID is accepted for compatibility but never trusted.
type RecipeRequest struct {
	ID          *int     `json:"id"`
	Name        *string  `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required"`
}

// ToRecipe builds a recipe from the payload with the given id
func (r RecipeRequest) ToRecipe(id int) entities.Recipe {
	recipe := entities.Recipe{ID: id, Ingredients: r.Ingredients}
	if r.Name != nil {
		recipe.Name = *r.Name
	}
	return recipe.Normalize()
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// ValidationErrorItem describes one rejected field of a request
type ValidationErrorItem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}
