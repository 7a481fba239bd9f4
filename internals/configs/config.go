package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret   string
	AppTimezone string
	AppLocation *time.Location
)

// Config is the resolved runtime configuration. Package vars above mirror the
// fields other packages read most often.
type Config struct {
	Port                  string
	JWTSecret             string
	AppTimezone           string
	SubmissionEditWindow  time.Duration
	EventRetentionDays    int
	EventRetentionCron    string
	DBAutoMigrate         bool
	CorsAllowOrigins      string
	StatementTimeoutMilli int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env tidak ditemukan, menggunakan ENV dari sistem")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running in Railway, menggunakan ENV dari sistem")
	}

	cfg := Config{
		Port:                  GetEnv("PORT", "3000"),
		JWTSecret:             GetEnv("JWT_SECRET"),
		AppTimezone:           GetEnv("APP_TIMEZONE", "Asia/Kolkata"),
		SubmissionEditWindow:  time.Duration(GetEnvInt("SUBMISSION_EDIT_WINDOW_MINUTES", 15)) * time.Minute,
		EventRetentionDays:    GetEnvInt("GRADING_EVENT_RETENTION_DAYS", 180),
		EventRetentionCron:    GetEnv("GRADING_EVENT_CRON", "30 3 * * *"),
		DBAutoMigrate:         GetEnvBool("DB_AUTO_MIGRATE", false),
		CorsAllowOrigins:      GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		StatementTimeoutMilli: GetEnvInt("DB_STATEMENT_TIMEOUT_MS", 3000),
	}

	JWTSecret = cfg.JWTSecret
	AppTimezone = cfg.AppTimezone
	AppLocation = loadLocation(cfg.AppTimezone)

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET belum diset!")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q bukan angka, pakai default %d", key, v, def)
		return def
	}
	return i
}

func GetEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] APP_TIMEZONE %q invalid (%v), fallback UTC", name, err)
		return time.UTC
	}
	return loc
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
