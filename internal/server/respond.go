package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gitlab.com/contasweb/contas-backend/internal/logger"
	"gitlab.com/contasweb/contas-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses. Store
// failures stay generic towards the client; the details go to the log.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrBillNotFound), errors.Is(err, service.ErrFinanceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBillAlreadyPaid):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidCategoryName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Log.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the {id} path segment as an integer.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}
