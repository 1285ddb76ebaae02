package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/testpick/testpick-api/internal/models"
)

// Schema is the single source of truth for field-level validity, shared by
// the form controller and the submission endpoint. Construct it once at
// startup and treat it as read-only.
type Schema struct {
	validate *validator.Validate
}

// New builds the submission schema
func New() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the json field names the client knows
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The framework list is a closed set; anything outside it is rejected
	_ = v.RegisterValidation("framework", func(fl validator.FieldLevel) bool {
		return models.IsFramework(fl.Field().String())
	})

	return &Schema{validate: v}
}

// Validate checks req against the schema. A valid request yields (nil, nil).
// An invalid one yields the per-field error mapping; the error return is
// reserved for non-validation failures (a misused schema), never for
// ordinary invalid input.
func (s *Schema) Validate(req *models.SubmitRequest) (models.FieldErrors, error) {
	err := s.validate.Struct(req)
	if err == nil {
		return nil, nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	fieldErrors := make(models.FieldErrors, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		fieldErrors[field] = append(fieldErrors[field], errorMessage(fieldError))
	}

	return fieldErrors, nil
}

// errorMessage maps a validator error to the message the form displays.
func errorMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "framework":
		return "Selecione um framework"
	case "name":
		return "O campo nome é obrigatório"
	case "email":
		if fe.Tag() == "required" {
			return "E-mail é obrigatório"
		}
		return "E-mail inválido"
	case "phone":
		if fe.Tag() == "max" {
			return "Telefone não pode ter mais de 15 dígitos"
		}
		return "Telefone deve ter pelo menos 10 dígitos"
	case "description":
		if fe.Tag() == "max" {
			return "A descrição não pode ter mais de 1500 caracteres"
		}
		return "A descrição deve ter pelo menos 10 caracteres"
	default:
		return fe.Field() + " é inválido"
	}
}
