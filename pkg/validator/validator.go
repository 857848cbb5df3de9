package validator

import (
	"fmt"
	"reflect"
	"strings"

	"pharmastock/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

// Errors is the list of violations of one struct.
type Errors []*ErrorResponse

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

func init() {
	// Report JSON names, which is what API callers and forms know.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	validate.RegisterValidation("date_required", func(fl validator.FieldLevel) bool {
		if d, ok := fl.Field().Interface().(model.Date); ok {
			return !d.IsZero()
		}
		return false
	})

	validate.RegisterValidation("decimal_gte0", func(fl validator.FieldLevel) bool {
		switch d := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return !d.IsNegative()
		case *decimal.Decimal:
			return d == nil || !d.IsNegative()
		}
		return false
	})
}

// ValidateStruct returns nil when data passes every rule.
func ValidateStruct(data interface{}) Errors {
	var errors Errors
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Errors{{FailedField: "", Tag: err.Error()}}
		}
		for _, err := range verrs {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
