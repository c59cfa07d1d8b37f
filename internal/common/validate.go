package common

import (
	"encoding/json"
	"net/http"
	"sync"

	validator "github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DecodeAndValidate decodes the request body into dst and runs struct validation.
func DecodeAndValidate(r *http.Request, dst any) *AppError {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return NewAppError(CodeBadRequest, "invalid request body", http.StatusBadRequest, err)
	}
	if err := Validator().Struct(dst); err != nil {
		appErr := NewAppError(CodeBadRequest, "request validation failed", http.StatusBadRequest, err)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			appErr.Details = map[string]any{"fields": fields}
		}
		return appErr
	}
	return nil
}
