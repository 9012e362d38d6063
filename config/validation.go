package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks the struct-level rules declared on Config and the
// rules that depend on the current environment.
func ValidateConfig(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, ValidationError{
				Field:   fe.Field(),
				Message: describe(fe),
			}.Error())
		}
	}

	// Production deployments must be able to reach the generation service.
	if IsProduction() && cfg.GeminiAPIKey == "" {
		problems = append(problems, ValidationError{
			Field:   "GeminiAPIKey",
			Message: "GEMINI_API_KEY is required in production",
		}.Error())
	}

	if strings.HasPrefix(cfg.IngredientsCSVPath, "s3://") && cfg.AWSRegion == "" {
		problems = append(problems, ValidationError{
			Field:   "AWSRegion",
			Message: "AWS_REGION is required for an s3:// ingredient source",
		}.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "\n"))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("must be a URL, got %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s=%s (value %v)", fe.Tag(), fe.Param(), fe.Value())
	}
}
