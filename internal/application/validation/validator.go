// Package validation centraliza la validación de DTOs con go-playground/validator.
// Cada formulario de creación declara sus restricciones en tags `validate`; la
// validación bloquea la operación en el primer error y devuelve un mensaje por campo.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError error de validación de un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator wrapper sobre validator.Validate para inyección.
type Validator struct {
	v *validator.Validate
}

// New construye el validador.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct valida el DTO. Devuelve el primer error de campo con un mensaje legible,
// o nil si todo es válido.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return FieldError{Field: fieldName(fe), Message: message(fe)}
	}
	return err
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace: "CreateProviderRequest.RUC" -> "RUC"
	parts := strings.Split(fe.StructNamespace(), ".")
	return parts[len(parts)-1]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "email inválido"
	case "min":
		return fmt.Sprintf("mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("máximo %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "numeric":
		return "solo dígitos"
	case "uuid4":
		return "identificador inválido"
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
