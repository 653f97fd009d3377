package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "eduplatform/errors"

	playground "github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *playground.Validate
)

func engine() *playground.Validate {
	once.Do(func() {
		instance = playground.New()
		UseJSONNames(instance)
	})
	return instance
}

// UseJSONNames makes v report json field names so messages match the
// request body. Routes apply it to gin's binding engine too.
func UseJSONNames(v *playground.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates v against its `validate` tags and returns a Validation
// AppError describing the first failing field.
func Struct(v interface{}) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation("Invalid input", err)
	}
	return apperrors.Validation(describe(fieldErrs[0]), err)
}

// Translate turns a gin binding error into a Validation AppError. Decode
// failures (malformed JSON, wrong types) become "Invalid request body".
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation(describe(fieldErrs[0]), err)
	}
	return apperrors.Validation("Invalid request body", err)
}

func describe(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
