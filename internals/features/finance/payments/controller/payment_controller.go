// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/features/finance/payments/dto"
	paymentModel "kostku_backend/internals/features/finance/payments/model"
	"kostku_backend/internals/features/finance/payments/service"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	userModel "kostku_backend/internals/features/users/user/model"
	helpers "kostku_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// POST /api/u/payments — tenant klaim sudah transfer
func (ctrl *PaymentController) Submit(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.SubmitPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Bulan pembayaran wajib diisi")
	}

	payment, err := service.SubmitPayment(ctrl.DB, userID, service.SubmitPaymentInput{
		Amount:        body.Amount,
		MonthFor:      body.MonthFor,
		TransactionID: body.TransactionID,
	})
	if err != nil {
		if errors.Is(err, service.ErrTenantNotEligible) {
			return helpers.JsonError(c, fiber.StatusForbidden, "Hanya tenant yang sudah menempati kamar yang bisa mengajukan pembayaran")
		}
		log.Println("[ERROR] submit payment gagal:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengajukan pembayaran")
	}

	return helpers.JsonCreated(c, "Klaim pembayaran dikirim, menunggu konfirmasi admin", payment)
}

// POST /api/u/payments/online — bayar sewa via Midtrans Snap
func (ctrl *PaymentController) PayOnline(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.OnlinePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Bulan pembayaran wajib diisi")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	payment, redirectURL, err := service.CreateOnlinePayment(ctrl.DB, userID, body.MonthFor, service.CustomerInput{
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotEligible):
			return helpers.JsonError(c, fiber.StatusForbidden, "Hanya tenant yang sudah menempati kamar yang bisa bayar online")
		case errors.Is(err, service.ErrGatewayUnavailable):
			return helpers.JsonError(c, fiber.StatusBadGateway, "Payment gateway sedang tidak bisa dihubungi, coba lagi")
		default:
			log.Println("[ERROR] buat transaksi online gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat transaksi pembayaran")
		}
	}

	return helpers.JsonCreated(c, "Transaksi pembayaran dibuat", fiber.Map{
		"payment":      payment,
		"snap_token":   payment.PaymentGatewayToken,
		"redirect_url": redirectURL,
	})
}

// POST /api/payments/notification — webhook Midtrans (tanpa auth)
func (ctrl *PaymentController) Webhook(c *fiber.Ctx) error {
	payment, err := service.HandlePaymentWebhook(ctrl.DB, c.Body())
	if err != nil {
		if errors.Is(err, service.ErrUnknownOrder) {
			// balas 200 supaya Midtrans tidak retry order yang memang bukan punya kita
			log.Println("[WARN] webhook: order_id tidak dikenal")
			return helpers.JsonOK(c, "ok", nil)
		}
		log.Println("[ERROR] proses webhook gagal:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}

	return helpers.JsonOK(c, "Notifikasi diproses", fiber.Map{
		"payment_id":     payment.PaymentID,
		"payment_status": payment.PaymentStatus,
	})
}

// GET /api/u/payments — riwayat pembayaran tenant yang login
func (ctrl *PaymentController) GetMine(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var tenant tenantModel.TenantModel
	if err := ctrl.DB.First(&tenant, "tenant_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Profil tenant tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil tenant")
	}

	var payments []paymentModel.PaymentModel
	if err := ctrl.DB.
		Where("payment_tenant_id = ?", tenant.TenantID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}

	return helpers.JsonOK(c, "Riwayat pembayaran Anda", payments)
}

// Row pembayaran + nama tenant, untuk listing admin
type paymentWithTenant struct {
	paymentModel.PaymentModel
	TenantName string `json:"tenant_name"`
}

// GET /api/a/payments?status=pending — semua pembayaran (admin)
func (ctrl *PaymentController) GetAll(c *fiber.Ctx) error {
	params := helpers.ParseFiber(c, "payment_created_at", "desc", helpers.AdminOpts)

	base := ctrl.DB.Table("payments").
		Joins("JOIN tenants ON tenants.tenant_id = payments.payment_tenant_id").
		Joins("JOIN users ON users.id = tenants.tenant_user_id")
	if status := c.Query("status"); status != "" {
		base = base.Where("payments.payment_status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}

	var rows []paymentWithTenant
	if err := base.Session(&gorm.Session{}).
		Select("payments.*, users.full_name AS tenant_name").
		Order("payments.payment_created_at DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pembayaran")
	}

	return helpers.JsonList(c, "Daftar pembayaran", rows, helpers.BuildMeta(total, params))
}

func (ctrl *PaymentController) finalize(c *fiber.Ctx, fn func(*gorm.DB, uuid.UUID) (*paymentModel.PaymentModel, error), okMsg string) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	payment, err := fn(ctrl.DB, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		case errors.Is(err, service.ErrPaymentFinalized):
			return helpers.JsonError(c, fiber.StatusConflict, "Pembayaran sudah diproses dengan keputusan lain")
		default:
			log.Println("[ERROR] proses pembayaran gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pembayaran")
		}
	}

	return helpers.JsonUpdated(c, okMsg, payment)
}

// PUT /api/a/payments/:id/approve
func (ctrl *PaymentController) Approve(c *fiber.Ctx) error {
	return ctrl.finalize(c, service.ApprovePayment, "Pembayaran dikonfirmasi")
}

// PUT /api/a/payments/:id/reject
func (ctrl *PaymentController) Reject(c *fiber.Ctx) error {
	return ctrl.finalize(c, service.RejectPayment, "Klaim pembayaran ditolak")
}

// POST /api/a/payments — admin catat pembayaran tunai
func (ctrl *PaymentController) Record(c *fiber.Ctx) error {
	var body dto.RecordPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Tenant & bulan pembayaran wajib diisi")
	}

	payment, err := service.RecordPayment(ctrl.DB, body.TenantID, body.MonthFor, body.Amount)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotEligible) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Tenant tidak ditemukan")
		}
		log.Println("[ERROR] catat pembayaran gagal:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat pembayaran")
	}

	return helpers.JsonCreated(c, "Pembayaran tunai dicatat", payment)
}
