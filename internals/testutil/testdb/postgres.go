//go:build testutil
// +build testutil

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "anggotaku_backend/internals/databases"
)

type PGHandle struct {
	DB     *gorm.DB
	sqlDB  *sql.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *PGHandle) Close() {
	if h.sqlDB != nil {
		_ = h.sqlDB.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// StartPostgres menyalakan container postgres, konek lewat lib/pq, lalu goose up.
func StartPostgres(ctx context.Context) (*PGHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("anggotaku"),
		postgres.WithUsername("anggotaku"),
		postgres.WithPassword("anggotaku"),
	)
	if err != nil {
		cancel()
		return nil, err
	}
	fail := func(err error) (*PGHandle, error) {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail(err)
	}
	sqlDB, err := sql.Open("postgres", uri)
	if err != nil {
		return fail(err)
	}
	if err := waitReady(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return fail(err)
	}
	sqlDB.SetMaxOpenConns(20)

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}),
		database.NewGormConfig(gormLogger.Default.LogMode(gormLogger.Silent)))
	if err != nil {
		_ = sqlDB.Close()
		return fail(err)
	}
	if _, err := database.Migrate(ctx, db); err != nil {
		_ = sqlDB.Close()
		return fail(err)
	}

	return &PGHandle{DB: db, sqlDB: sqlDB, cancel: cancel, stop: pg.Terminate}, nil
}

func waitReady(ctx context.Context, db *sql.DB) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}
