package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"
)

type adminLoginRequest struct {
	Key string `json:"key"`
}

// adminLogin exchanges the configured admin key for a short-lived session
// token (returned in the body and set as a cookie).
func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	if s.adminKey == "" {
		s.log.Error().Msg("admin API key is not configured")
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Key), []byte(s.adminKey)) != 1 {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to mint admin session")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) exportPayments(w http.ResponseWriter, r *http.Request) {
	f, err := s.reports.PaymentsWorkbook(r.Context())
	if err != nil {
		writeError(s.log, w, err, "Report")
		return
	}

	filename := "payments-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		s.log.Error().Err(err).Msg("failed to stream payments workbook")
	}
}
