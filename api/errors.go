package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/etnz/vitals"
	"github.com/go-playground/validator/v10"
)

// Error is the body of every error response.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Status  int          `json:"-"`
}

// FieldError names an invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

var (
	errBadRequest = &Error{Code: "BAD_REQUEST", Message: "malformed request", Status: http.StatusBadRequest}
	errInternal   = &Error{Code: "INTERNAL_ERROR", Message: "internal error", Status: http.StatusInternalServerError}
)

// invalidInput turns an engine or validator error into a 422 response.
func invalidInput(err error) *Error {
	e := &Error{Code: "INVALID_INPUT", Message: err.Error(), Status: http.StatusUnprocessableEntity}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		e.Message = "invalid request fields"
		for _, fe := range verrs {
			e.Fields = append(e.Fields, FieldError{Field: fe.Field(), Message: translate(fe)})
		}
		return e
	}
	var ierr *vitals.InputError
	if errors.As(err, &ierr) {
		e.Fields = []FieldError{{Field: ierr.Field, Message: ierr.Reason}}
	}
	return e
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q validation", fe.Field(), fe.Tag())
	}
}

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, e *Error) {
	writeJSON(w, e.Status, map[string]*Error{"error": e})
}
