package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/EvgrafovDR/todolist-clone/internal/apperr"
)

// validate checks request payloads; field names in error messages come from
// the json tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// fieldErrors is the per-field validation error body, one message list per
// field; request-wide messages go under non_field_errors.
type fieldErrors map[string][]string

func respondFieldError(w http.ResponseWriter, field, message string) {
	if field == "" {
		field = "non_field_errors"
	}
	respondJSON(w, http.StatusBadRequest, fieldErrors{field: {message}})
}

// respondError maps the application error taxonomy onto HTTP statuses:
// validation -> 400 with per-field body, forbidden -> 403, not found -> 404.
// Anything else is a 500 with no detail leaked.
func respondError(w http.ResponseWriter, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		respondFieldError(w, ve.Field, ve.Message)
		return
	}

	if errors.Is(err, apperr.ErrForbidden) {
		respondJSON(w, http.StatusForbidden, map[string]string{"detail": "forbidden"})
		return
	}

	if errors.Is(err, apperr.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}

	slog.Error("internal error", "error", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
}

// decodeJSON parses and validates the request body into dst. It writes the
// error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		respondFieldError(w, "", "malformed JSON body")
		return false
	}

	err = validate.Struct(dst)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			body := fieldErrors{}
			for _, fe := range verrs {
				field := fe.Field()
				if field == "" {
					field = "non_field_errors"
				}
				body[field] = append(body[field], validationMessage(fe))
			}
			respondJSON(w, http.StatusBadRequest, body)
			return false
		}

		respondFieldError(w, "", "invalid request")
		return false
	}

	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	case "min":
		return "value is too small"
	case "datetime":
		return "invalid date format, expected YYYY-MM-DD"
	default:
		return "invalid value"
	}
}
