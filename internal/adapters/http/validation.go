package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/ports"
)

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidationError is returned when a request is rejected before the handler body runs
type ValidationError struct {
	Items []ports.ValidationErrorItem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(item.Loc, "."), item.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// bindError turns a body decoding failure into a validation error.
// Errors unrelated to the payload shape (e.g. unsupported media type) pass through.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		kind := typeName(typeErr.Type)
		return &ValidationError{Items: []ports.ValidationErrorItem{{
			Loc:  loc,
			Msg:  fmt.Sprintf("value is not a valid %s", kind),
			Type: "type_error." + kind,
		}}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ValidationError{Items: []ports.ValidationErrorItem{{
			Loc:  []string{"body", fmt.Sprintf("%d", syntaxErr.Offset)},
			Msg:  "JSON decode error",
			Type: "value_error.jsondecode",
		}}}
	}

	return &ValidationError{Items: []ports.ValidationErrorItem{{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "value_error",
	}}}
}

// validationError converts validator failures into per-field items
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Items: []ports.ValidationErrorItem{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}}
	}

	items := make([]ports.ValidationErrorItem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		item := ports.ValidationErrorItem{
			Loc:  []string{"body", fe.Field()},
			Msg:  fe.Error(),
			Type: "value_error." + fe.Tag(),
		}
		if fe.Tag() == "required" {
			item.Msg = "field required"
			item.Type = "value_error.missing"
		}
		items = append(items, item)
	}

	return &ValidationError{Items: items}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "str"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Ptr:
		return typeName(t.Elem())
	case reflect.Struct, reflect.Map:
		return "dict"
	default:
		return t.Kind().String()
	}
}

// ErrorHandler renders every error as {"detail": ...}
func ErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil {
			return
		}

		var (
			code   = http.StatusInternalServerError
			detail interface{}
		)

		var ve *ValidationError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ve):
			code = http.StatusUnprocessableEntity
			detail = ve.Items
		case errors.As(err, &he):
			code = he.Code
			detail = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		default:
			detail = err.Error()
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ports.ErrorResponse{Detail: detail})
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}
