// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import "github.com/google/uuid"

// Body untuk POST /api/u/payments (klaim bayar manual)
type SubmitPaymentRequest struct {
	Amount        float64 `json:"amount" validate:"omitempty,gte=0"`
	MonthFor      string  `json:"month_for" validate:"required,min=3,max=30"`
	TransactionID *string `json:"transaction_id" validate:"omitempty,max=100"`
}

// Body untuk POST /api/u/payments/online (bayar via Midtrans Snap)
type OnlinePaymentRequest struct {
	MonthFor string `json:"month_for" validate:"required,min=3,max=30"`
}

// Body untuk POST /api/a/payments (admin catat bayar tunai)
type RecordPaymentRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
	MonthFor string    `json:"month_for" validate:"required,min=3,max=30"`
	Amount   float64   `json:"amount" validate:"omitempty,gte=0"`
}
