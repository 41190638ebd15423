package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator:
// "notblank" rejects whitespace-only strings, min/max compare decimal.Decimal
// values numerically, and errors report fields by their JSON names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// ValidationError describes one failed rule on one request field
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// TranslateValidationErrors turns validator errors into per-field details.
// It returns nil for errors that did not come from the validator.
func TranslateValidationErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		detail := ValidationError{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			detail.Message = fmt.Sprintf("%s is required", fe.Field())
		case "notblank":
			detail.Message = fmt.Sprintf("%s cannot be blank", fe.Field())
		case "min":
			if fe.Kind() == reflect.String {
				detail.Message = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
			} else {
				detail.Message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				detail.Message = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
			} else {
				detail.Message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
			}
		case "email":
			detail.Message = fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "gt":
			detail.Message = fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
		default:
			detail.Message = fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
		}

		details = append(details, detail)
	}
	return details
}
