// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	paymentModel "kostku_backend/internals/features/finance/payments/model"
)

var (
	ErrPaymentNotFound   = errors.New("pembayaran tidak ditemukan")
	ErrTenantNotEligible = errors.New("tenant belum approved atau belum menempati kamar")
	ErrPaymentFinalized  = errors.New("pembayaran sudah diproses")
)

type SubmitPaymentInput struct {
	Amount        float64 // 0 = pakai rent snapshot tenant
	MonthFor      string
	TransactionID *string
}

// activeTenantByUser: tenant approved + menempati kamar, dari user login.
func activeTenantByUser(db *gorm.DB, userID uuid.UUID) (*tenantModel.TenantModel, error) {
	var tenant tenantModel.TenantModel
	if err := db.First(&tenant, "tenant_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotEligible
		}
		return nil, err
	}
	if !tenant.TenantIsApproved || tenant.TenantRoomID == nil {
		return nil, ErrTenantNotEligible
	}
	return &tenant, nil
}

// SubmitPayment: tenant klaim sudah bayar manual (transfer), status pending
// sampai admin approve. Nominal diambil dari rent snapshot tenant.
func SubmitPayment(db *gorm.DB, userID uuid.UUID, in SubmitPaymentInput) (*paymentModel.PaymentModel, error) {
	tenant, err := activeTenantByUser(db, userID)
	if err != nil {
		return nil, err
	}

	amount := in.Amount
	if amount <= 0 {
		amount = tenant.TenantRentAmount
	}

	payment := &paymentModel.PaymentModel{
		PaymentTenantID:      tenant.TenantID,
		PaymentAmount:        amount,
		PaymentMonthFor:      in.MonthFor,
		PaymentTransactionID: in.TransactionID,
		PaymentMethod:        paymentModel.PaymentMethodManual,
		PaymentStatus:        paymentModel.PaymentStatusPending,
	}
	if err := db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// finalizePayment: pending → target. Idempoten: kalau sudah di target, sukses
// diam-diam; kalau sudah di status final LAIN, tolak.
func finalizePayment(db *gorm.DB, paymentID uuid.UUID, target string) (*paymentModel.PaymentModel, error) {
	var payment paymentModel.PaymentModel
	if err := db.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.PaymentStatus == target {
		return &payment, nil
	}
	if payment.PaymentStatus != paymentModel.PaymentStatusPending {
		return nil, ErrPaymentFinalized
	}

	updates := map[string]interface{}{"payment_status": target}
	if target == paymentModel.PaymentStatusPaid {
		now := time.Now()
		updates["payment_paid_at"] = now
		payment.PaymentPaidAt = &now
	}

	res := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_id = ? AND payment_status = ?", paymentID, paymentModel.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// keduluan proses lain
		return nil, ErrPaymentFinalized
	}

	payment.PaymentStatus = target
	return &payment, nil
}

// ApprovePayment: admin konfirmasi klaim bayar. pending → paid.
func ApprovePayment(db *gorm.DB, paymentID uuid.UUID) (*paymentModel.PaymentModel, error) {
	return finalizePayment(db, paymentID, paymentModel.PaymentStatusPaid)
}

// RejectPayment: admin tolak klaim. pending → overdue (tenant harus bayar ulang).
func RejectPayment(db *gorm.DB, paymentID uuid.UUID) (*paymentModel.PaymentModel, error) {
	return finalizePayment(db, paymentID, paymentModel.PaymentStatusOverdue)
}

// RecordPayment: admin catat pembayaran tunai/langsung — langsung paid.
func RecordPayment(db *gorm.DB, tenantID uuid.UUID, monthFor string, amount float64) (*paymentModel.PaymentModel, error) {
	var tenant tenantModel.TenantModel
	if err := db.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotEligible
		}
		return nil, err
	}
	if amount <= 0 {
		amount = tenant.TenantRentAmount
	}

	now := time.Now()
	payment := &paymentModel.PaymentModel{
		PaymentTenantID: tenant.TenantID,
		PaymentAmount:   amount,
		PaymentMonthFor: monthFor,
		PaymentMethod:   paymentModel.PaymentMethodManual,
		PaymentStatus:   paymentModel.PaymentStatusPaid,
		PaymentPaidAt:   &now,
	}
	if err := db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}
