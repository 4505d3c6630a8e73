package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rajputritesh1907/taskbackend/logging"
	"github.com/rajputritesh1907/taskbackend/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Warnf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}

// writeProjectError maps service errors for the project and user
// endpoints: validation 400, authorization 403, not found 404.
func writeProjectError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var authErr *models.AuthorizationError
	var notFoundErr *models.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &authErr):
		http.Error(w, authErr.Message, http.StatusForbidden)
	case errors.As(err, &notFoundErr):
		http.Error(w, notFoundErr.Message, http.StatusNotFound)
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

// writeTaskError maps service errors for the task endpoints, which keep
// their historical codes: validation and not found 400, authorization
// 401.
func writeTaskError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var authErr *models.AuthorizationError
	var notFoundErr *models.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &authErr):
		http.Error(w, authErr.Message, http.StatusUnauthorized)
	case errors.As(err, &notFoundErr):
		http.Error(w, notFoundErr.Message, http.StatusBadRequest)
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
