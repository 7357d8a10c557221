package api

import "github.com/go-playground/validator/v10"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	commentHandler commentHandler
	imageHandler   imageHandler
	contactHandler contactHandler
	sessionHandler sessionHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"content"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// StatusResponse carries the human-readable outcome of a write operation
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Comment posted."`
}

// validate is shared by every handler that checks request payloads
var validate = validator.New()
