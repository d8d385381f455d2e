package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a single JSON object into dst and runs struct validation.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			writeErrorResponse(w, http.StatusBadRequest, errorResponse{
				Error: validationMessage(fe),
				Code:  codeValidationFailed,
				Field: fe.Field(),
			})
			return false
		}
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "latitude":
		return "Latitude must be between -90 and 90"
	case "longitude":
		return "Longitude must be between -180 and 180"
	case "timezone":
		return "Unknown timezone"
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), orEqual(fe))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func orEqual(fe validator.FieldError) string {
	if fe.Tag() == "gte" {
		return "or equal to " + fe.Param()
	}
	return fe.Param()
}
