package usecase

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
)

// Compile-time check
var _ ReportUseCase = (*reportUC)(nil)

// exportPageSize bounds how many rows are pulled from the store per round
// trip while streaming the export.
const exportPageSize = 500

type ReportUseCase interface {
	// PaymentsWorkbook builds the admin xlsx export: one masked row per
	// payment plus a per-package summary sheet. Card data is already
	// masked in storage and re-masked here; raw digits never appear.
	PaymentsWorkbook(ctx context.Context) (*excelize.File, error)
}

type reportUC struct {
	payments repository.PaymentRepository
}

func NewReportUseCase(payments repository.PaymentRepository) *reportUC {
	return &reportUC{payments: payments}
}

var paymentHeader = []interface{}{
	"Receipt ID", "Transaction ID", "Customer", "Email", "Phone",
	"Package", "Amount", "Method", "Card Number", "Status",
	"Payment Date", "Subscription Start", "Subscription End", "Notes",
}

func (u *reportUC) PaymentsWorkbook(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Payments"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &paymentHeader); err != nil {
		return nil, err
	}

	rowIdx := 2
	for offset := 0; ; offset += exportPageSize {
		page, err := u.payments.List(ctx, repository.NoTX, offset, exportPageSize)
		if err != nil {
			return nil, err
		}
		for _, raw := range page {
			p := raw.Masked()
			cardNumber := ""
			if p.Card != nil {
				cardNumber = p.Card.CardNumber
			}
			row := []interface{}{
				p.ReceiptID, p.TransactionID, p.CustomerName, p.Email, p.Phone,
				p.Package.Name, p.Amount, string(p.PaymentMethod), cardNumber, string(p.Status),
				p.PaymentDate.Format("2006-01-02 15:04"),
				p.SubscriptionStartDate.Format("2006-01-02"),
				p.SubscriptionEndDate.Format("2006-01-02"),
				p.Notes,
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
			rowIdx++
		}
		if len(page) < exportPageSize {
			break
		}
	}

	if err := u.addSummarySheet(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (u *reportUC) addSummarySheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Package", "Payments", "Revenue", "Average"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	stats, err := u.payments.PackageStats(ctx, repository.NoTX)
	if err != nil {
		return err
	}
	for i, s := range stats {
		row := []interface{}{string(s.Type), s.Count, s.Revenue, s.Average}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
