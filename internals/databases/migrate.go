package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func newProvider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	var (
		dialect goose.Dialect
		dir     string
	)
	switch name := db.Dialector.Name(); name {
	case DialectPostgres:
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	case DialectSQLite:
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return nil, fmt.Errorf("dialect %q tidak didukung", name)
	}
	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, sqlDB, fsys)
}

// Migrate menjalankan semua migrasi yang belum diterapkan. Return jumlah yang diterapkan.
func Migrate(ctx context.Context, db *gorm.DB) (int, error) {
	p, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	res, err := p.Up(ctx)
	if err != nil {
		return len(res), fmt.Errorf("migrate up: %w", err)
	}
	return len(res), nil
}

type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// MigrationStatus untuk `anggotaku migrate --status`.
func MigrationStatus(ctx context.Context, db *gorm.DB) ([]MigrationState, error) {
	p, err := newProvider(db)
	if err != nil {
		return nil, err
	}
	st, err := p.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationState, 0, len(st))
	for _, s := range st {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
