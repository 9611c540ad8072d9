package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"postboard/app/repositories"
)

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

func sendMessage(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"message": message})
}

// sendStoreError maps a store error onto the response: not-found gets the
// fixed message, anything else is a 500 carrying the store's own text.
func sendStoreError(w http.ResponseWriter, err error, notFound string) {
	if errors.Is(err, repositories.ErrNotFound) {
		sendMessage(w, notFound, http.StatusNotFound)
		return
	}
	sendError(w, err.Error(), http.StatusInternalServerError)
}

// decodeJSON reads the request body into v. An empty body decodes as {}.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendError(w, "Not found", http.StatusNotFound)
}

// MethodNotAllowed answers requests whose path matches a route but whose
// method does not.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
