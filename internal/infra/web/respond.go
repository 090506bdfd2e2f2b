package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/usecase"
)

// response is the envelope carried by every JSON reply.
type response struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Pagination *usecase.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Count: &count})
}

func writePage(w http.ResponseWriter, data interface{}, pg usecase.Pagination) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Pagination: &pg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: status < http.StatusBadRequest, Message: msg})
}

// writeError is the single error-to-response mapping shared by every
// handler: validation and invalid-argument errors become 400 with the
// message(s) echoed, ErrNotFound becomes 404 with a fixed per-resource
// message, and anything else becomes a generic 500 whose cause is logged
// server-side only.
func writeError(log *zerolog.Logger, w http.ResponseWriter, err error, resource string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		// Expected outcome, not logged as an error.
		writeJSON(w, http.StatusNotFound, response{Success: false, Message: resource + " not found"})
	default:
		log.Error().Err(err).Str("resource", resource).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: "Internal server error"})
	}
}
