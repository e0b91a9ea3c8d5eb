package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic handler dan mengubahnya jadi 500,
// sambil mencetak lokasi panic + request ID untuk ditelusuri.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			reqID, _ := c.Locals("reqid").(string)
			log.Printf("💥 panic tertangkap: %v (reqid=%s %s %s)\n%s", e, reqID, c.Method(), c.Path(), debug.Stack())
		},
	})
}
