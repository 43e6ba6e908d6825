package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserExistingEmailCode marks a registration or update that collides with
// another account's email.
const UserExistingEmailCode = "USER.001"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// validationError carries per-field messages and matches
// common.ErrorValidation.
type validationError struct {
	details []string
}

func (e *validationError) Error() string {
	return "validation error: " + strings.Join(e.details, "; ")
}

func (e *validationError) Unwrap() error { return common.ErrorValidation }

func newValidationError(details ...string) error {
	return &validationError{details: details}
}

// bindingError converts a gin binding failure into a validationError.
func bindingError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]string, 0, len(ve))
		for _, fe := range ve {
			details = append(details, fieldMessage(fe))
		}
		return newValidationError(details...)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return newValidationError("request body is required")
	case errors.As(err, &syntaxErr):
		return newValidationError("request body is not valid JSON")
	case errors.As(err, &typeErr):
		return newValidationError(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	default:
		return newValidationError("request body is malformed")
	}
}

// queryBindingError converts a query binding failure. Conversion errors carry
// parser text, so they are replaced with a fixed message.
func queryBindingError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return bindingError(err)
	}
	return newValidationError("page and size must be positive integers")
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return name + " should not be empty"
	case "email":
		return name + " must be an email"
	case "strongpassword":
		return name + " must contain at least 8 characters including a lower-case letter, " +
			"an upper-case letter, a number, and a special character (" + passwordSpecials + ")"
	case "onecorrect":
		return name + " must contain one correct answer"
	case "len":
		return fmt.Sprintf("%s must contain exactly %s elements", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return name + " should not be empty"
		}
		return fmt.Sprintf("%s must not be less than %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

// fieldPath drops the struct name so paths read like the JSON payload,
// e.g. "questions[0].answers".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// classify maps an error to its HTTP status and response body.
func classify(err error) (int, ErrorResponse) {
	var ve *validationError

	switch {
	case errors.As(err, &ve):
		return httpError(http.StatusBadRequest, ve.details...)
	case errors.Is(err, common.ErrorValidation):
		return httpError(http.StatusBadRequest)
	case errors.Is(err, common.ErrEmailAlreadyRegistered):
		return http.StatusBadRequest, ErrorResponse{Code: UserExistingEmailCode, Message: "Email already registered"}
	case common.IsAuthenticationError(err):
		return httpError(http.StatusUnauthorized)
	case errors.Is(err, common.ErrPermissionDenied):
		return httpError(http.StatusForbidden)
	case errors.Is(err, common.ErrorNotFound):
		return httpError(http.StatusNotFound)
	default:
		return httpError(http.StatusInternalServerError)
	}
}

func httpError(status int, details ...string) (int, ErrorResponse) {
	return status, ErrorResponse{
		Code:    fmt.Sprintf("HTTP.%d", status),
		Message: http.StatusText(status),
		Details: details,
	}
}

// abortWithError writes the classified error and stops the handler chain.
// Server errors are logged with the request id; client errors are not.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed",
			"error", err.Error(),
			"request_id", c.GetString(requestIDKey),
			"path", c.FullPath(),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
