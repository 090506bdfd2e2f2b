package model

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit-card"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	// Cancelled is reachable only through the soft-delete path,
	// never through the status-update whitelist.
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// CancelledNote is the fixed audit note written by a soft delete.
const CancelledNote = "Payment cancelled by user"

// UpdatableStatuses is the whitelist accepted by the status-update operation.
var UpdatableStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func IsUpdatableStatus(s PaymentStatus) bool {
	for _, v := range UpdatableStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CardDetails is present on a Payment iff PaymentMethod is credit-card.
// Keeping it a separate value makes the conditional requirement a type-level
// fact instead of validators that no-op for bank transfers.
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"` // MM/YY
	CVV        string `json:"cvv"`
	NameOnCard string `json:"nameOnCard"`
}

// Payment records one subscription purchase event.
type Payment struct {
	ID                    string        `json:"id"`
	ReceiptID             string        `json:"receiptId"`
	TransactionID         string        `json:"transactionId"`
	CustomerName          string        `json:"customerName"`
	Email                 string        `json:"email"`
	Phone                 string        `json:"phone"`
	Address               string        `json:"address"`
	Package               Package       `json:"package"`
	Amount                int64         `json:"amount"` // minor currency units
	PaymentMethod         PaymentMethod `json:"paymentMethod"`
	Card                  *CardDetails  `json:"paymentDetails,omitempty"`
	PaymentDate           time.Time     `json:"paymentDate"`
	Status                PaymentStatus `json:"status"`
	SubscriptionStartDate time.Time     `json:"subscriptionStartDate"`
	SubscriptionEndDate   time.Time     `json:"subscriptionEndDate"`
	Notes                 string        `json:"notes,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// NewPayment builds a payment with defaulted lifecycle fields: status
// completed, payment/subscription start now, subscription end one calendar
// month after the start. Receipt and transaction ids are NOT assigned here;
// callers assign them (and may regenerate on a uniqueness rejection).
func NewPayment(id string, pkg Package, method PaymentMethod) *Payment {
	now := time.Now().UTC()
	return &Payment{
		ID:                    id,
		Package:               pkg,
		Amount:                pkg.Price,
		PaymentMethod:         method,
		PaymentDate:           now,
		Status:                PaymentStatusCompleted,
		SubscriptionStartDate: now,
		SubscriptionEndDate:   now.AddDate(0, 1, 0),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Touch bumps the update timestamp.
func (p *Payment) Touch() { p.UpdatedAt = time.Now().UTC() }

// AssignIdentifiers (re)generates the human-facing receipt and transaction
// ids: "LN"+millis+3 random digits and "TXN"+millis+4 random digits.
func (p *Payment) AssignIdentifiers() {
	ms := time.Now().UnixMilli()
	p.ReceiptID = fmt.Sprintf("LN%d%03d", ms, rand.IntN(1000))
	p.TransactionID = fmt.Sprintf("TXN%d%04d", ms, rand.IntN(10000))
}

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s.,'-]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRe = regexp.MustCompile(`\D`)
	expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe      = regexp.MustCompile(`^\d{3,4}$`)
)

// Normalize trims free-text fields, lower-cases the email and strips the
// phone down to digits. Called before Validate so validators see the
// canonical representation that will be stored.
func (p *Payment) Normalize() {
	p.CustomerName = strings.TrimSpace(p.CustomerName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = nonDigitRe.ReplaceAllString(p.Phone, "")
	p.Address = strings.TrimSpace(p.Address)
	if p.PaymentMethod != PaymentMethodCreditCard {
		p.Card = nil
		return
	}
	if p.Card != nil {
		p.Card.CardNumber = strings.ReplaceAll(p.Card.CardNumber, " ", "")
		p.Card.NameOnCard = strings.TrimSpace(p.Card.NameOnCard)
	}
}

// Validate checks every field and collects one message per failure so the
// API layer can surface all of them at once.
func (p *Payment) Validate() error {
	v := &domain.ValidationError{}

	if p.CustomerName == "" || !nameRe.MatchString(p.CustomerName) {
		v.Add("customerName may contain only letters, spaces and .,'- characters")
	}
	if !emailRe.MatchString(p.Email) {
		v.Add("email must be a valid address")
	}
	if len(p.Phone) != 10 {
		v.Add("phone must contain exactly 10 digits")
	}
	if p.Address == "" {
		v.Add("address is required")
	}
	if fixed, ok := PackageByType(p.Package.Type); !ok {
		v.Add("package.type must be one of basic, premium or enterprise")
	} else if p.Package.Name != fixed.Name || p.Package.Price != fixed.Price {
		v.Add("package name and price must match the catalog entry for its type")
	}
	if p.Amount < 0 {
		v.Add("amount must not be negative")
	}

	switch p.PaymentMethod {
	case PaymentMethodCreditCard:
		p.validateCard(v)
	case PaymentMethodBankTransfer:
		// no extra fields
	default:
		v.Add("paymentMethod must be credit-card or bank-transfer")
	}

	if !p.validStatus() {
		v.Add("status must be one of pending, completed, failed, refunded or cancelled")
	}
	return v.OrNil()
}

func (p *Payment) validateCard(v *domain.ValidationError) {
	if p.Card == nil {
		v.Add("paymentDetails are required for credit-card payments")
		return
	}
	if !isMaskedCardNumber(p.Card.CardNumber) {
		if digits := nonDigitRe.ReplaceAllString(p.Card.CardNumber, ""); len(digits) != 16 || digits != p.Card.CardNumber {
			v.Add("cardNumber must contain exactly 16 digits")
		}
	}
	if !expiryRe.MatchString(p.Card.ExpiryDate) {
		v.Add("expiryDate must be in MM/YY format")
	}
	if p.Card.CVV != maskedCVV && !cvvRe.MatchString(p.Card.CVV) {
		v.Add("cvv must contain 3 or 4 digits")
	}
	if p.Card.NameOnCard == "" {
		v.Add("nameOnCard is required")
	}
}

func (p *Payment) validStatus() bool {
	switch p.Status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

const maskedCVV = "***"

// MaskCardNumber keeps only the last four digits: "**** **** **** 1234".
// Idempotent: masking an already-masked value yields the same string,
// because only the trailing digits survive each pass.
func MaskCardNumber(s string) string {
	digits := nonDigitRe.ReplaceAllString(s, "")
	if len(digits) < 4 {
		return "**** **** **** ****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// MaskCVV redacts the CVV entirely.
func MaskCVV(string) string { return maskedCVV }

func isMaskedCardNumber(s string) bool {
	return strings.HasPrefix(s, "**** **** **** ")
}

// MaskForStorage irreversibly rewrites card data before the record is
// persisted. The unmasked values must never reach the store.
func (p *Payment) MaskForStorage() {
	if p.PaymentMethod != PaymentMethodCreditCard || p.Card == nil {
		return
	}
	p.Card.CardNumber = MaskCardNumber(p.Card.CardNumber)
	p.Card.CVV = MaskCVV(p.Card.CVV)
}

// Masked returns the read projection used for every outbound
// representation. It re-masks defensively even though storage already
// masked, so the double masking is intentional and visible.
func (p Payment) Masked() Payment {
	if p.Card != nil {
		card := *p.Card
		card.CardNumber = MaskCardNumber(card.CardNumber)
		card.CVV = MaskCVV(card.CVV)
		p.Card = &card
	}
	return p
}
