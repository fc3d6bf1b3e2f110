package ports

import (
	"context"

	"github.com/recipekeeper/core/internal/domain/entities"
)

// RecipeStore defines the interface for full-collection recipe persistence.
// Load returns the whole collection in stored order; Save overwrites it.
type RecipeStore interface {
	Load(ctx context.Context) ([]entities.Recipe, error)
	Save(ctx context.Context, recipes []entities.Recipe) error
}
