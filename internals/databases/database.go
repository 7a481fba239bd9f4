package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tutly_backend/internals/configs"
	eventModel "tutly_backend/internals/features/grading/events/model"
	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	attachmentModel "tutly_backend/internals/features/learning/attachments/model"
	attendanceModel "tutly_backend/internals/features/learning/attendance/model"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
)

var DB *gorm.DB

func ConnectDB(cfg configs.Config) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// Catatan: kalau lewat PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tutly&options=-c statement_timeout=%d",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
		cfg.StatementTimeoutMilli,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
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
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		// query leaderboard/report paling sering menyentuh tabel ini
		DB.Exec("SELECT 1 FROM submissions LIMIT 1")
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate membuat/menyesuaikan tabel. Urutan mengikuti ketergantungan antar tabel.
func AutoMigrate(db *gorm.DB) error {
	log.Println("[INFO] AutoMigrate...")
	if err := db.AutoMigrate(
		&accountModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.ClassModel{},
		&enrollmentModel.EnrolledUserModel{},
		&attachmentModel.AttachmentModel{},
		&submissionModel.SubmissionModel{},
		&pointModel.PointModel{},
		&attendanceModel.AttendanceModel{},
		&eventModel.GradingEventModel{},
	); err != nil {
		return err
	}
	// uq_enrolled_user_triple tidak menangkap mentor NULL
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrolled_user_no_mentor
		ON enrolled_users (enrolled_user_username, enrolled_user_course_id)
		WHERE enrolled_user_mentor_username IS NULL`).Error
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
