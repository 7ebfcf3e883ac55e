package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// RequestValidator is installed as echo.Validator. Field names in messages
// are the JSON names clients send.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.String()
		}
		return nil
	}, decimal.NullDecimal{})

	_ = v.RegisterValidation("progress", func(fl validator.FieldLevel) bool {
		return entity.ValidProgress(fl.Field().String())
	})
	_ = v.RegisterValidation("doc_status", func(fl validator.FieldLevel) bool {
		return entity.ValidDocStatus(fl.Field().String())
	})

	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.InvalidArgument("Invalid request body", err)
	}
	return apperrors.InvalidArgument(describe(fieldErrs[0]), err)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "progress":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(entity.ProgressValues(), ", "))
	case "doc_status":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(entity.DocStatusValues(), ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
