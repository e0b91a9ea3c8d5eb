// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	paymentModel "kostku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans dipanggil sekali saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CustomerInput struct {
	FullName string
	Email    string
	Phone    string
}

var ErrGatewayUnavailable = errors.New("payment gateway tidak bisa dihubungi")

/* =========================================================
   Bayar sewa online (Snap)
========================================================= */

// CreateOnlinePayment: buat payment pending + Snap token untuk bayar sewa
// bulan tertentu. OrderID = RENT-<payment_id> supaya webhook bisa balikin
// ke row payments.
func CreateOnlinePayment(db *gorm.DB, userID uuid.UUID, monthFor string, cust CustomerInput) (*paymentModel.PaymentModel, string, error) {
	tenant, err := activeTenantByUser(db, userID)
	if err != nil {
		return nil, "", err
	}

	payment := &paymentModel.PaymentModel{
		PaymentID:       uuid.New(),
		PaymentTenantID: tenant.TenantID,
		PaymentAmount:   tenant.TenantRentAmount,
		PaymentMonthFor: monthFor,
		PaymentMethod:   paymentModel.PaymentMethodMidtrans,
		PaymentStatus:   paymentModel.PaymentStatusPending,
	}
	orderID := fmt.Sprintf("RENT-%s", payment.PaymentID)
	payment.PaymentOrderID = &orderID

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(payment.PaymentAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FullName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    int64(payment.PaymentAmount),
				Qty:      1,
				Name:     "Sewa kamar " + monthFor,
				Category: "RENT",
			},
		},
	}

	resp, respErr := SnapClient.CreateTransaction(req)
	if respErr != nil {
		log.Println("[ERROR] midtrans CreateTransaction:", respErr.GetMessage())
		return nil, "", ErrGatewayUnavailable
	}

	payment.PaymentGatewayToken = resp.Token
	if err := db.Create(payment).Error; err != nil {
		return nil, "", err
	}
	return payment, resp.RedirectURL, nil
}

/* =========================================================
   Webhook notifikasi Midtrans
========================================================= */

type WebhookNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

var ErrUnknownOrder = errors.New("order_id tidak dikenal")

// HandlePaymentWebhook: proses notifikasi status dari Midtrans.
// settlement/capture(accept) → paid; expire/cancel/deny → overdue;
// status lain (mis. pending) dibiarkan. Raw payload disimpan buat audit.
func HandlePaymentWebhook(db *gorm.DB, rawBody []byte) (*paymentModel.PaymentModel, error) {
	var notif WebhookNotification
	if err := json.Unmarshal(rawBody, &notif); err != nil {
		return nil, err
	}
	if notif.OrderID == "" {
		return nil, ErrUnknownOrder
	}

	var payment paymentModel.PaymentModel
	if err := db.First(&payment, "payment_order_id = ?", notif.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownOrder
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"payment_gateway_payload": datatypes.JSON(rawBody),
	}
	if notif.TransactionID != "" {
		updates["payment_transaction_id"] = notif.TransactionID
	}

	switch notif.TransactionStatus {
	case "settlement":
		updates["payment_status"] = paymentModel.PaymentStatusPaid
		updates["payment_paid_at"] = time.Now()
	case "capture":
		if notif.FraudStatus == "accept" {
			updates["payment_status"] = paymentModel.PaymentStatusPaid
			updates["payment_paid_at"] = time.Now()
		}
	case "expire", "cancel", "deny":
		updates["payment_status"] = paymentModel.PaymentStatusOverdue
	}

	// Hanya payment pending yang boleh digeser webhook; notifikasi duplikat
	// atau telat tidak menimpa keputusan final.
	query := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_order_id = ?", notif.OrderID)
	if _, changed := updates["payment_status"]; changed {
		query = query.Where("payment_status = ?", paymentModel.PaymentStatusPending)
	}
	if err := query.Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := db.First(&payment, "payment_order_id = ?", notif.OrderID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
