// file: internals/features/finance/payments/service/payment_service_test.go
package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	paymentModel "kostku_backend/internals/features/finance/payments/model"
)

func setupPaymentDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&roomModel.RoomModel{},
		&tenantModel.TenantModel{},
		&paymentModel.PaymentModel{},
	))
	for _, table := range []string{"payments", "tenants", "rooms"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func activeTenant(t *testing.T, db *gorm.DB, rent float64) (*tenantModel.TenantModel, uuid.UUID) {
	t.Helper()
	room := &roomModel.RoomModel{
		RoomNumber:      "P-" + uuid.NewString()[:8],
		RoomMonthlyRent: rent,
		RoomStatus:      roomModel.RoomStatusOccupied,
		RoomFacilities:  datatypes.JSON(`[]`),
	}
	require.NoError(t, db.Create(room).Error)

	userID := uuid.New()
	tenant := &tenantModel.TenantModel{
		TenantUserID:     userID,
		TenantRoomID:     &room.RoomID,
		TenantIsApproved: true,
		TenantRentAmount: rent,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant, userID
}

func TestSubmitPayment_Success(t *testing.T) {
	db := setupPaymentDB(t)
	tenant, userID := activeTenant(t, db, 1_250_000)

	trx := "TRF-2025-10-001"
	payment, err := SubmitPayment(db, userID, SubmitPaymentInput{
		MonthFor:      "Oktober 2025",
		TransactionID: &trx,
	})
	require.NoError(t, err)

	assert.Equal(t, paymentModel.PaymentStatusPending, payment.PaymentStatus)
	assert.Equal(t, paymentModel.PaymentMethodManual, payment.PaymentMethod)
	assert.Equal(t, tenant.TenantID, payment.PaymentTenantID)
	// tanpa amount eksplisit → pakai rent snapshot tenant
	assert.Equal(t, 1_250_000.0, payment.PaymentAmount)
	assert.Nil(t, payment.PaymentPaidAt)
}

func TestSubmitPayment_UnallocatedTenantRejected(t *testing.T) {
	db := setupPaymentDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&tenantModel.TenantModel{TenantUserID: userID}).Error)

	_, err := SubmitPayment(db, userID, SubmitPaymentInput{MonthFor: "Oktober 2025"})
	assert.ErrorIs(t, err, ErrTenantNotEligible)
}

func TestApprovePayment(t *testing.T) {
	db := setupPaymentDB(t)
	_, userID := activeTenant(t, db, 1_000_000)

	payment, err := SubmitPayment(db, userID, SubmitPaymentInput{MonthFor: "Oktober 2025"})
	require.NoError(t, err)

	approved, err := ApprovePayment(db, payment.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusPaid, approved.PaymentStatus)
	assert.NotNil(t, approved.PaymentPaidAt)

	// idempoten: approve ulang tetap sukses, status tidak berubah
	again, err := ApprovePayment(db, payment.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusPaid, again.PaymentStatus)

	// tapi reject setelah paid harus ditolak
	_, err = RejectPayment(db, payment.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentFinalized)
}

func TestRejectPayment(t *testing.T) {
	db := setupPaymentDB(t)
	_, userID := activeTenant(t, db, 1_000_000)

	payment, err := SubmitPayment(db, userID, SubmitPaymentInput{MonthFor: "November 2025"})
	require.NoError(t, err)

	rejected, err := RejectPayment(db, payment.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusOverdue, rejected.PaymentStatus)
	assert.Nil(t, rejected.PaymentPaidAt)

	_, err = ApprovePayment(db, payment.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentFinalized)
}

func TestApprovePayment_NotFound(t *testing.T) {
	db := setupPaymentDB(t)
	_, err := ApprovePayment(db, uuid.New())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestRecordPayment(t *testing.T) {
	db := setupPaymentDB(t)
	tenant, _ := activeTenant(t, db, 1_500_000)

	// amount 0 → pakai rent snapshot
	payment, err := RecordPayment(db, tenant.TenantID, "Desember 2025", 0)
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusPaid, payment.PaymentStatus)
	assert.Equal(t, 1_500_000.0, payment.PaymentAmount)
	assert.NotNil(t, payment.PaymentPaidAt)
}

func TestHandlePaymentWebhook_Settlement(t *testing.T) {
	db := setupPaymentDB(t)
	tenant, _ := activeTenant(t, db, 2_000_000)

	orderID := "RENT-" + uuid.NewString()
	payment := &paymentModel.PaymentModel{
		PaymentTenantID: tenant.TenantID,
		PaymentAmount:   2_000_000,
		PaymentMonthFor: "Oktober 2025",
		PaymentMethod:   paymentModel.PaymentMethodMidtrans,
		PaymentStatus:   paymentModel.PaymentStatusPending,
		PaymentOrderID:  &orderID,
	}
	require.NoError(t, db.Create(payment).Error)

	body := fmt.Sprintf(`{"order_id":%q,"transaction_id":"mid-123","transaction_status":"settlement"}`, orderID)
	got, err := HandlePaymentWebhook(db, []byte(body))
	require.NoError(t, err)

	assert.Equal(t, paymentModel.PaymentStatusPaid, got.PaymentStatus)
	assert.NotNil(t, got.PaymentPaidAt)
	require.NotNil(t, got.PaymentTransactionID)
	assert.Equal(t, "mid-123", *got.PaymentTransactionID)
	assert.NotEmpty(t, got.PaymentGatewayPayload)
}

func TestHandlePaymentWebhook_ExpireThenLateSettlement(t *testing.T) {
	db := setupPaymentDB(t)
	tenant, _ := activeTenant(t, db, 2_000_000)

	orderID := "RENT-" + uuid.NewString()
	payment := &paymentModel.PaymentModel{
		PaymentTenantID: tenant.TenantID,
		PaymentAmount:   2_000_000,
		PaymentMonthFor: "Oktober 2025",
		PaymentMethod:   paymentModel.PaymentMethodMidtrans,
		PaymentStatus:   paymentModel.PaymentStatusPending,
		PaymentOrderID:  &orderID,
	}
	require.NoError(t, db.Create(payment).Error)

	expire := fmt.Sprintf(`{"order_id":%q,"transaction_status":"expire"}`, orderID)
	got, err := HandlePaymentWebhook(db, []byte(expire))
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusOverdue, got.PaymentStatus)

	// notifikasi telat tidak boleh menimpa status final
	late := fmt.Sprintf(`{"order_id":%q,"transaction_status":"settlement"}`, orderID)
	got, err = HandlePaymentWebhook(db, []byte(late))
	require.NoError(t, err)
	assert.Equal(t, paymentModel.PaymentStatusOverdue, got.PaymentStatus)
}

func TestHandlePaymentWebhook_UnknownOrder(t *testing.T) {
	db := setupPaymentDB(t)
	_, err := HandlePaymentWebhook(db, []byte(`{"order_id":"RENT-nonexistent","transaction_status":"settlement"}`))
	assert.ErrorIs(t, err, ErrUnknownOrder)
}
