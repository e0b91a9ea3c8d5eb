package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	paymentModel "kostku_backend/internals/features/finance/payments/model"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	ticketModel "kostku_backend/internals/features/maintenance/tickets/model"
	authModel "kostku_backend/internals/features/users/auth/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kostku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true, // biar unique violation kebaca sebagai gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// AutoMigrate menjalankan migrasi skema untuk semua model fitur.
// Dipanggil dari main saat DB_AUTO_MIGRATE=true.
func AutoMigrate() {
	log.Println("🧱 Menjalankan AutoMigrate...")
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&roomModel.RoomModel{},
		&tenantModel.TenantModel{},
		&agentModel.ServiceAgentModel{},
		&ticketModel.TicketModel{},
		&paymentModel.PaymentModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
