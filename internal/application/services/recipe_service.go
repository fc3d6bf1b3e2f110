package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/ports"
)

// RecipeService handles recipe-related operations.
// Every call reloads the whole collection from the store; mutations save it back.
type RecipeService struct {
	store  ports.RecipeStore
	logger *logger.Logger

	// writeMu guards load-mutate-save when lockWrites is set
	writeMu    sync.Mutex
	lockWrites bool
}

// NewRecipeService creates a new recipe service
func NewRecipeService(store ports.RecipeStore, lockWrites bool, logger *logger.Logger) *RecipeService {
	return &RecipeService{
		store:      store,
		logger:     logger.WithComponent("recipe_service"),
		lockWrites: lockWrites,
	}
}

// ListRecipes returns the whole collection in stored order
func (s *RecipeService) ListRecipes(ctx context.Context) ([]entities.Recipe, error) {
	return s.load(ctx)
}

// CreateRecipe appends a new recipe with id = max existing id + 1.
// Any id carried by the request is ignored.
func (s *RecipeService) CreateRecipe(ctx context.Context, req ports.RecipeRequest) (*entities.Recipe, error) {
	unlock := s.lock()
	defer unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	recipe := req.ToRecipe(entities.NextRecipeID(recipes))
	recipes = append(recipes, recipe)

	if err := s.save(ctx, recipes); err != nil {
		return nil, err
	}

	s.logger.LogRecipeAction("create", recipe.ID, map[string]interface{}{"name": recipe.Name})

	return &recipe, nil
}

// GetRecipe retrieves the first recipe with the given id
func (s *RecipeService) GetRecipe(ctx context.Context, id int) (*entities.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := entities.FindRecipeIndex(recipes, id)
	if idx < 0 {
		return nil, entities.ErrRecipeNotFound
	}

	recipe := recipes[idx]
	return &recipe, nil
}

// UpdateRecipe replaces the first recipe with the given id in place.
// The stored id is always the path id, whatever the request carries.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int, req ports.RecipeRequest) (*entities.Recipe, error) {
	unlock := s.lock()
	defer unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := entities.FindRecipeIndex(recipes, id)
	if idx < 0 {
		return nil, entities.ErrRecipeNotFound
	}

	recipe := req.ToRecipe(id)
	recipes[idx] = recipe

	if err := s.save(ctx, recipes); err != nil {
		return nil, err
	}

	s.logger.LogRecipeAction("update", recipe.ID, map[string]interface{}{"position": idx})

	return &recipe, nil
}

// DeleteRecipe removes the first recipe with the given id, keeping the order of the rest
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int) error {
	unlock := s.lock()
	defer unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := entities.FindRecipeIndex(recipes, id)
	if idx < 0 {
		return entities.ErrRecipeNotFound
	}

	recipes = append(recipes[:idx], recipes[idx+1:]...)

	if err := s.save(ctx, recipes); err != nil {
		return err
	}

	s.logger.LogRecipeAction("delete", id, map[string]interface{}{"position": idx})

	return nil
}

func (s *RecipeService) load(ctx context.Context) ([]entities.Recipe, error) {
	recipes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	if dups := entities.DuplicateRecipeIDs(recipes); len(dups) > 0 {
		s.logger.Warnw("Recipe collection contains duplicate ids, first match wins", "ids", dups)
	}

	return recipes, nil
}

func (s *RecipeService) save(ctx context.Context, recipes []entities.Recipe) error {
	if err := s.store.Save(ctx, recipes); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

func (s *RecipeService) lock() func() {
	if !s.lockWrites {
		return func() {}
	}
	s.writeMu.Lock()
	return s.writeMu.Unlock
}
