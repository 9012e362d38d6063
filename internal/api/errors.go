package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/service"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// ValidationIssue describes one field that failed request validation
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// statusFor maps a flow error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidQuery), errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a flow error. Server errors carry failurePrefix and the
// underlying detail.
func writeError(c *gin.Context, log *zap.Logger, failurePrefix string, err error) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Detail: strings.TrimSuffix(err.Error(), ".")})
		return
	}

	detail := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		detail = svcErr.Detail()
	}
	log.Error(failurePrefix, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(status, ErrorResponse{Detail: failurePrefix + ": " + detail})
}

// writeValidationError renders a request that could not be bound
func writeValidationError(c *gin.Context, source string, err error) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: validationIssues(source, err)})
}

func missingField(source, field string) []ValidationIssue {
	return []ValidationIssue{{Loc: []string{source, field}, Msg: "field required", Type: "value_error.missing"}}
}

func validationIssues(source string, err error) []ValidationIssue {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		issues := make([]ValidationIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			field := snakeCase(fe.Field())
			switch fe.Tag() {
			case "required":
				issues = append(issues, missingField(source, field)...)
			case "gte":
				issues = append(issues, ValidationIssue{
					Loc:  []string{source, field},
					Msg:  "ensure this value is greater than or equal to " + fe.Param(),
					Type: "value_error.number.not_ge",
				})
			default:
				issues = append(issues, ValidationIssue{Loc: []string{source, field}, Msg: fe.Error(), Type: "value_error"})
			}
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationIssue{{Loc: []string{source, typeErr.Field}, Msg: "expected " + typeErr.Type.String(), Type: "type_error"}}
	}
	return []ValidationIssue{{Loc: []string{source}, Msg: err.Error(), Type: "value_error.jsondecode"}}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
