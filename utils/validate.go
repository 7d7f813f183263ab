package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hooktrail/hooktrail/pkg/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err != nil {
		validateErr := errs.NewValidateError(errs.ErrRequestValidate)
		for _, e := range err.(validator.ValidationErrors) {
			name := strings.ToLower(e.Field())
			validateErr.Fields[name] = formatError(e)
		}
		return validateErr
	}
	return nil
}

func formatError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "oneof":
		return fmt.Sprintf("invalid value: %s", fe.Value())
	case "gt":
		return fmt.Sprintf("value must be > %s", fe.Param())
	case "gte":
		return fmt.Sprintf("value must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("value must be <= %s", fe.Param())
	case "min":
		return fmt.Sprintf("length must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", fe.Param())
	}
	return fe.Error()
}
