package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/ports"
)

const recipeNotFoundDetail = "Recipe not found"

// RecipeHandler handles recipe-related requests
type RecipeHandler struct {
	recipeService ports.RecipeService
	logger        *logger.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService ports.RecipeService, logger *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

// Register mounts the recipe routes on the given echo instance
func (h *RecipeHandler) Register(e *echo.Echo) {
	e.GET("/", h.Welcome)
	e.GET("/favicon.ico", h.Favicon)

	e.GET("/recipes", h.ListRecipes)
	e.POST("/recipes", h.CreateRecipe)
	e.GET("/recipes/:recipe_id", h.GetRecipe)
	e.PUT("/recipes/:recipe_id", h.UpdateRecipe)
	e.DELETE("/recipes/:recipe_id", h.DeleteRecipe)
}

// Welcome godoc
// @Summary Welcome message
// @Tags misc
// @Produce json
// @Success 200 {object} ports.MessageResponse
// @Router / [get]
func (h *RecipeHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Welcome to the Recipe Keeper"})
}

// Favicon answers browsers with an empty object instead of a 404
func (h *RecipeHandler) Favicon(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{})
}

// ListRecipes godoc
// @Summary List recipes
// @Description Get every recipe in stored order
// @Tags recipes
// @Produce json
// @Success 200 {array} entities.Recipe
// @Failure 500 {object} ports.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	recipes, err := h.recipeService.ListRecipes(c.Request().Context())
	if err != nil {
		return h.serviceError(c, "List recipes failed", err)
	}

	return c.JSON(http.StatusOK, recipes)
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Append a recipe; the server assigns the id
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body ports.RecipeRequest true "Recipe data"
// @Success 200 {object} entities.Recipe
// @Failure 422 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	req, err := bindRecipeRequest(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request().Context(), req)
	if err != nil {
		return h.serviceError(c, "Create recipe failed", err)
	}

	return c.JSON(http.StatusOK, recipe)
}

// GetRecipe godoc
// @Summary Get recipe by ID
// @Tags recipes
// @Produce json
// @Param recipe_id path int true "Recipe ID"
// @Success 200 {object} entities.Recipe
// @Failure 404 {object} ports.ErrorResponse
// @Failure 422 {object} ports.ErrorResponse
// @Router /recipes/{recipe_id} [get]
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.GetRecipe(c.Request().Context(), recipeID)
	if err != nil {
		return h.serviceError(c, "Get recipe failed", err, "recipe_id", recipeID)
	}

	return c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe godoc
// @Summary Replace a recipe
// @Description Replace every field of a recipe; the stored id is the path id
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe_id path int true "Recipe ID"
// @Param request body ports.RecipeRequest true "Recipe data"
// @Success 200 {object} entities.Recipe
// @Failure 404 {object} ports.ErrorResponse
// @Failure 422 {object} ports.ErrorResponse
// @Router /recipes/{recipe_id} [put]
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	req, err := bindRecipeRequest(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request().Context(), recipeID, req)
	if err != nil {
		return h.serviceError(c, "Update recipe failed", err, "recipe_id", recipeID)
	}

	return c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Tags recipes
// @Produce json
// @Param recipe_id path int true "Recipe ID"
// @Success 200 {object} ports.StatusResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /recipes/{recipe_id} [delete]
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.DeleteRecipe(c.Request().Context(), recipeID); err != nil {
		return h.serviceError(c, "Delete recipe failed", err, "recipe_id", recipeID)
	}

	return c.JSON(http.StatusOK, ports.StatusResponse{
		Status:  "success",
		Message: "Recipe deleted successfully",
	})
}

// serviceError maps a service failure onto the two error kinds the API exposes
func (h *RecipeHandler) serviceError(c echo.Context, msg string, err error, fields ...interface{}) error {
	if errors.Is(err, entities.ErrRecipeNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, recipeNotFoundDetail)
	}

	h.logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
		WithError(err).
		Errorw(msg, fields...)

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

func recipeIDParam(c echo.Context) (int, error) {
	raw := c.Param("recipe_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Items: []ports.ValidationErrorItem{{
			Loc:  []string{"path", "recipe_id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}}
	}
	return id, nil
}

func bindRecipeRequest(c echo.Context) (ports.RecipeRequest, error) {
	var req ports.RecipeRequest

	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, &req); err != nil {
		return req, bindError(err)
	}

	if err := c.Validate(&req); err != nil {
		return req, validationError(err)
	}

	return req, nil
}
