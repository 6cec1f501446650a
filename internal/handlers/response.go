package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pep299/template-blog-publisher/internal/schema"
)

// Response represents a standard API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// violationDetail locates a rejected field for API clients.
type violationDetail struct {
	Kind  schema.Kind `json:"kind"`
	Field string      `json:"field"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, response Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(response)
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Response{
		Status: "error",
		Error:  message,
	})
}

// WriteValidationError writes a 422 for a rejected document. Schema
// violations carry the kind and field path in data.
func WriteValidationError(w http.ResponseWriter, err error) error {
	resp := Response{Status: "error", Error: err.Error()}
	var violation *schema.SchemaViolation
	if errors.As(err, &violation) {
		resp.Data = violationDetail{Kind: violation.Kind, Field: violation.Field}
	}
	return WriteJSON(w, http.StatusUnprocessableEntity, resp)
}

// WriteSuccess writes a success response
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}
