// Package validation wraps go-playground/validator for request bodies.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/apperrors"
)

// Validator validates request structs and reports failures keyed by json field name
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the project's custom tags registered
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register validation tag %q: %v", tag, err))
		}
	}
	mustRegister("notblank", notBlank)
	mustRegister("objectid", objectID)

	return &Validator{validate: v}
}

// Validate returns nil or an apperrors validation error listing every bad field
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Internal("falha ao validar requisição", err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldPath(fe)] = message(fe)
	}
	return apperrors.Validation("dados inválidos", fields)
}

// fieldPath drops the root struct name, so nested fields read "location.city"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "notblank":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter pelo menos %s caracteres", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("deve ter pelo menos %s itens", fe.Param())
		}
		return fmt.Sprintf("deve ser no mínimo %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("deve ter no máximo %s itens", fe.Param())
		}
		return fmt.Sprintf("deve ser no máximo %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gtefield":
		return "deve ser posterior ou igual à data de início"
	case "url":
		return "URL inválida"
	case "objectid":
		return "identificador inválido"
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func objectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}
