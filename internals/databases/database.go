package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"anggotaku_backend/internals/configs"
	"anggotaku_backend/internals/metrics"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// ParseURL: "sqlite:///./app.db" → (sqlite, "./app.db"), selain itu DSN postgres apa adanya.
func ParseURL(url string) (dialect, dsn string) {
	url = strings.TrimSpace(url)
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite:///")
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite://")
	case strings.HasPrefix(url, "file:"):
		return DialectSQLite, url
	default:
		return DialectPostgres, url
	}
}

// SQLiteDSN menyalakan foreign key (default sqlite: off).
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Open membuka koneksi gorm sesuai DATABASE_URL.
func Open(cfg *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	dialect, dsn := ParseURL(cfg.DatabaseURL)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL kosong")
	}

	gcfg := NewGormConfig(configs.NewGormLogger(log, cfg.SlowQueryThreshold))

	var (
		db  *gorm.DB
		err error
	)
	switch dialect {
	case DialectSQLite:
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(dsn)), gcfg)
	default:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
		}), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if log != nil {
		log.Info("✅ DB connected", zap.String("dialect", dialect))
	}
	return db, nil
}

// NewGormConfig: dipakai Open dan test helper supaya perilaku sama.
func NewGormConfig(l gormLogger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// TunePool: sqlite cukup 1 koneksi (writer tunggal), postgres ikut config.
func TunePool(db *gorm.DB, cfg *configs.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if db.Dialector.Name() == DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// Ping dengan timeout + metric latency.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	t0 := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	metrics.ObserveDBPing(time.Since(t0))
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
