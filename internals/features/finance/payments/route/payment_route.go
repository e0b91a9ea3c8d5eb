// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/finance/payments/controller"
)

// PaymentAdminRoutes: konfirmasi & pencatatan pembayaran (group /api/a)
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := admin.Group("/payments")
	payments.Get("/", ctrl.GetAll)
	payments.Post("/record", ctrl.Record)
	payments.Put("/:id/approve", ctrl.Approve)
	payments.Put("/:id/reject", ctrl.Reject)
}

// PaymentUserRoutes: pembayaran dari sisi tenant (group /api/u)
func PaymentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := user.Group("/payments")
	payments.Get("/", ctrl.GetMine)
	payments.Post("/", ctrl.Submit)
	payments.Post("/online", ctrl.PayOnline)
}

// PaymentWebhookRoutes: endpoint notifikasi Midtrans, dipasang TANPA auth
// (path-nya juga ada di skipPaths auth middleware).
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	api.Post("/payments/notification", ctrl.Webhook)
}
