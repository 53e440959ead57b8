package servererrors

import (
	"errors"
	"fmt"
)

// Sentinel errors services and stores return upward. Handlers translate them
// into a [ServerError] carrying the right status code, and the error
// middleware writes them out as {"message": ...}.
var (
	ErrInvalidRequestPayload = errors.New("Invalid request payload!")
	ErrAllFieldsRequired     = errors.New("All fields are required!")
	ErrInvalidRole           = errors.New("Invalid role!")
	ErrUsernameTaken         = errors.New("Username already exists!")
	ErrInvalidCredentials    = errors.New("Invalid credentials!")
	ErrUserNotFound          = errors.New("User not found!")
	ErrFarmerNotFound        = errors.New("Farmer not found!")
	ErrClientNotFound        = errors.New("Client not found!")
	ErrProfileNotFound       = errors.New("Farmer profile not found!")
	ErrProductNotFound       = errors.New("Product not found!")
	ErrNotProductOwner       = errors.New("Product not found or not authorized!")
	ErrInvalidQuantity       = errors.New("Quantity must be greater than 0!")
	ErrInvalidPrice          = errors.New("Quantity and price must be greater than 0!")
	ErrNoAccessToken         = errors.New("Missing access token!")
	ErrUnauthorized          = errors.New("Invalid token!")
	ErrUnauthorizedAccess    = errors.New("Access denied for this role!")
)

// InsufficientStockError reports how much stock is actually available when an
// order asks for more than the product holds.
type InsufficientStockError struct {
	Available string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %s kg available!", e.Available)
}

type ServerError struct {
	StatusCode int
	Message    string
	Errors     any // extra detail for the response body, e.g. validation errors
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}
