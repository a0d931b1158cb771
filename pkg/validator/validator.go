package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &validator{
		validator: v,
	}
}

// ValidateStruct func - returns one readable line per failed field
func (v *validator) ValidateStruct(inf interface{}) error {
	err := v.validator.Struct(inf)
	if err == nil {
		return nil
	}

	var fieldErrs validators.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(messages, "; "))
}
