package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/usecase"
)

type transactionRequest struct {
	UserID      string     `json:"userId"`
	Type        string     `json:"type"`
	Amount      int64      `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Recipient   string     `json:"recipient"`
	Status      string     `json:"status"`
}

func (r transactionRequest) toInput() usecase.TransactionInput {
	return usecase.TransactionInput{
		UserID:      r.UserID,
		Type:        r.Type,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		Recipient:   r.Recipient,
		Status:      r.Status,
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// userId is accepted as-is: it is an opaque external key with no
	// user-entity existence check.
	txn, err := s.transactions.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeData(w, http.StatusCreated, txn)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.transactions.ListAll(r.Context())
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeList(w, txns, len(txns))
}

func (s *Server) listTransactionsByUser(w http.ResponseWriter, r *http.Request) {
	txns, err := s.transactions.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeList(w, txns, len(txns))
}

func (s *Server) transactionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.transactions.Summary(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeData(w, http.StatusOK, summary)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.transactions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeData(w, http.StatusOK, txn)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := s.transactions.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeData(w, http.StatusOK, txn)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(s.log, w, err, "Transaction")
		return
	}
	writeMessage(w, http.StatusOK, "Transaction deleted successfully")
}
