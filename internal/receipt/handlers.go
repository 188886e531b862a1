package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20 // 1MB

// errorBody is the JSON envelope for every error response
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Type    string  `json:"type"`
	Message string  `json:"message,omitempty"`
	Details []Issue `json:"details,omitempty"`
}

// writeJSON writes v as the JSON response body with the given status
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes an error envelope typed with the status text of code
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorBody{Error: errorDetail{
		Type:    http.StatusText(code),
		Message: message,
	}})
}

// writeValidationError writes a 422 listing every failed field
func writeValidationError(w http.ResponseWriter, verr *ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
		Type:    http.StatusText(http.StatusUnprocessableEntity),
		Details: verr.Issues,
	}})
}

// handleIndex describes the API
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Receipt Processor API",
	})
}

// handleDoc serves the OpenAPI document
func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(openAPIDoc); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// handleProcessReceipt validates and stores a receipt, returning its ID
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReceiptRequest(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var sizeErr *http.MaxBytesError
		var verr *ValidationError
		switch {
		case errors.As(err, &sizeErr):
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", sizeErr.Limit))
		case errors.As(err, &verr):
			writeValidationError(w, verr)
		default:
			slog.Warn("Error decoding receipt", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
		}
		return
	}

	receipt, err := req.toReceipt()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := s.service.Process(receipt)
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetPoints returns the points awarded for a stored receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if verr := validateID(id); verr != nil {
		writeValidationError(w, verr)
		return
	}

	points, ok := s.service.Points(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No receipt found for id: %s", id))
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}
