// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue" // juga dipakai saat klaim ditolak admin

	PaymentMethodManual   = "manual"
	PaymentMethodMidtrans = "midtrans"
)

// PaymentModel merepresentasikan tabel payments (klaim bayar sewa bulanan).
type PaymentModel struct {
	PaymentID       uuid.UUID `json:"payment_id" gorm:"type:uuid;primaryKey;column:payment_id"`
	PaymentTenantID uuid.UUID `json:"payment_tenant_id" gorm:"type:uuid;not null;column:payment_tenant_id;index"`

	PaymentAmount   float64 `json:"payment_amount" gorm:"not null;column:payment_amount;check:payment_amount > 0"`
	PaymentMonthFor string  `json:"payment_month_for" gorm:"type:varchar(30);not null;column:payment_month_for"` // mis. "Oktober 2025"

	PaymentTransactionID *string `json:"payment_transaction_id,omitempty" gorm:"type:varchar(100);column:payment_transaction_id"`
	PaymentOrderID       *string `json:"payment_order_id,omitempty" gorm:"type:varchar(100);unique;column:payment_order_id"`

	PaymentMethod string `json:"payment_method" gorm:"type:varchar(20);not null;default:'manual';column:payment_method"`
	PaymentStatus string `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending';column:payment_status;index"`

	PaymentGatewayToken   string         `json:"payment_gateway_token,omitempty" gorm:"type:text;column:payment_gateway_token"`
	PaymentGatewayPayload datatypes.JSON `json:"payment_gateway_payload,omitempty" gorm:"column:payment_gateway_payload"`

	PaymentPaidAt *time.Time `json:"payment_paid_at,omitempty" gorm:"column:payment_paid_at"`
	PaymentDate   time.Time  `json:"payment_date" gorm:"column:payment_date;autoCreateTime"`

	PaymentCreatedAt time.Time `json:"payment_created_at" gorm:"column:payment_created_at;autoCreateTime"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at" gorm:"column:payment_updated_at;autoUpdateTime"`
}

// TableName mengikat model ke tabel payments
func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
