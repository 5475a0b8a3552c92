package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
)

type errorBody struct {
	Error *domain.Error `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps a domain error kind to an HTTP status. Errors without a
// kind are internal failures and deliberately opaque to the client.
func respondError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("unhandled internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: &domain.Error{
			Code:    "internal",
			Message: "internal server error",
		}})
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUnauthorized:
		status = http.StatusForbidden
	case domain.KindUpstream:
		status = http.StatusBadGateway
	}
	respondJSON(w, status, errorBody{Error: de})
}

type listMeta struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Total    int32 `json:"total"`
}

type listResponse struct {
	Data any      `json:"data"`
	Meta listMeta `json:"meta"`
}
