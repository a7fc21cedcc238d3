// Package validation checks decoded request bodies against their struct tags.
// Besides the standard go-playground/validator tags it understands the journal's
// enumerations (role, recommendation, article_status) and notblank.
package validation

import (
	"fmt"
	"strings"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = validator.New()

func init() {
	rules := map[string]validator.Func{
		"role": func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).Valid()
		},
		"recommendation": func(fl validator.FieldLevel) bool {
			return domain.Recommendation(fl.Field().String()).Valid()
		},
		"article_status": func(fl validator.FieldLevel) bool {
			return domain.ArticleStatus(fl.Field().String()).Valid()
		},
		"notblank": validators.NotBlank,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

// ValidationError holds one message per failed field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct returns a *ValidationError describing every field that failed.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "notblank":
		return fmt.Sprintf("field '%s' must not be blank", fe.Field())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s long", fe.Field(), fe.Param())
	case "role":
		return fmt.Sprintf("field '%s' must be one of AUTHOR, EDITOR, REVIEWER", fe.Field())
	case "recommendation":
		return fmt.Sprintf("field '%s' must be one of ACCEPT, REJECT, MAJOR_REVISION, MINOR_REVISION", fe.Field())
	case "article_status":
		return fmt.Sprintf("field '%s' is not a known article status", fe.Field())
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
