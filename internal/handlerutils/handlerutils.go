package handlerutils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIHandler is an http handler that returns an error so a centralized
// middleware can handle logging and error responses.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(payload)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	return WriteJSON(
		w,
		statusCode,
		errorResponse{
			Message: message,
			Errors:  errs,
		},
	)
}
