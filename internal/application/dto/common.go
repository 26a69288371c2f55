package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation on a request DTO.
func Validate(v any) error {
	return validate.Struct(v)
}

// PageRequest pagination for listings.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage applies defaults when Limit/Offset are unset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorBody is the error object of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse HTTP failure envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// NewErrorResponse builds the standard failure envelope.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: ErrorBody{Code: code, Message: message}}
}
