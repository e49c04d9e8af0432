package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	ErrorDetails(w, status, errMsg, "")
}

func ErrorDetails(w http.ResponseWriter, status int, errMsg, details string) {
	JSON(w, status, ErrorResponse{Error: errMsg, Details: details})
}

// DecodeValidate читает JSON-тело и проверяет теги validate.
func DecodeValidate(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("field %q is required", verrs[0].Field())
		}
		return err
	}
	return nil
}
