package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config dibangun sekali saat start, lalu dioper ke komponen yang butuh.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`
	Port     string `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"APP_TIMEZONE" envDefault:"Asia/Jakarta"`

	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"sqlite:///./app.db"`
	DBMaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBAutoMigrate      bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`

	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:","`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	PinVerifyRateLimit int           `env:"PIN_VERIFY_RATE_LIMIT" envDefault:"0"`

	SentryDSN string `env:"SENTRY_DSN"`
	Release   string `env:"RELEASE" envDefault:"dev"`
}

func (c *Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") }

// =======================
// ENV LOADER
// =======================

// Load membaca .env (kalau ada) lalu ENV sistem ke Config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse hanya membaca ENV proses (dipakai test).
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT tidak boleh negatif")
	}
	if cfg.PinVerifyRateLimit < 0 {
		return nil, fmt.Errorf("PIN_VERIFY_RATE_LIMIT tidak boleh negatif")
	}
	return &cfg, nil
}

func cleanList(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM (lewat zap)
// =======================
type GormLogger struct {
	Log           *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(log *zap.Logger, slow time.Duration) gormLogger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormLogger{
		Log:           log.Named("gorm"),
		SlowThreshold: slow,
		LogLevel:      gormLogger.Info,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.Log.Error("query error", append(fields, zap.Error(err))...)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Log.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.Log.Debug("query", fields...)
	}
}
