package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/model"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/usecase"
)

type createPaymentRequest struct {
	CustomerName *string `json:"customerName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Package      *struct {
		Type string `json:"type"`
	} `json:"package"`
	Amount         *int64             `json:"amount"`
	PaymentMethod  *string            `json:"paymentMethod"`
	PaymentDetails *model.CardDetails `json:"paymentDetails"`
	Notes          string             `json:"notes"`
}

// missingFields lists the required creation fields that were absent, in a
// stable order for the error message.
func (r *createPaymentRequest) missingFields() []string {
	var missing []string
	if r.CustomerName == nil {
		missing = append(missing, "customerName")
	}
	if r.Email == nil {
		missing = append(missing, "email")
	}
	if r.Phone == nil {
		missing = append(missing, "phone")
	}
	if r.Address == nil {
		missing = append(missing, "address")
	}
	if r.Package == nil {
		missing = append(missing, "package")
	}
	if r.Amount == nil {
		missing = append(missing, "amount")
	}
	if r.PaymentMethod == nil {
		missing = append(missing, "paymentMethod")
	}
	return missing
}

// listPackages exposes the fixed catalog so clients render prices from the
// same source the validator checks against.
func (s *Server) listPackages(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, model.Packages())
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if missing := req.missingFields(); len(missing) > 0 {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	payment, err := s.payments.Create(r.Context(), usecase.CreatePaymentInput{
		CustomerName:  *req.CustomerName,
		Email:         *req.Email,
		Phone:         *req.Phone,
		Address:       *req.Address,
		PackageType:   req.Package.Type,
		Amount:        *req.Amount,
		PaymentMethod: *req.PaymentMethod,
		Card:          req.PaymentDetails,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeData(w, http.StatusCreated, payment)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	payments, pagination, err := s.payments.List(r.Context(), page, limit)
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writePage(w, payments, pagination)
}

func (s *Server) paymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.payments.Stats(r.Context())
	if err != nil {
		writeError(s.log, w, err, "Payment stats")
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeData(w, http.StatusOK, payment)
}

func (s *Server) getPaymentByReceipt(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.GetByReceiptID(r.Context(), chi.URLParam(r, "receiptId"))
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeData(w, http.StatusOK, payment)
}

func (s *Server) listPaymentsByEmail(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.ListByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeList(w, payments, len(payments))
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (s *Server) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := s.payments.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.Notes)
	if err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeData(w, http.StatusOK, payment)
}

func (s *Server) cancelPayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(s.log, w, err, "Payment")
		return
	}
	writeMessage(w, http.StatusOK, "Payment cancelled successfully")
}
