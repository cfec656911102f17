package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"anggotaku_backend/internals/configs"
	database "anggotaku_backend/internals/databases"
	"anggotaku_backend/internals/logging"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Terapkan migrasi database (goose) lalu keluar",
	Long: `Menjalankan migrasi yang ter-embed di binary sesuai dialek DATABASE_URL
(postgres atau sqlite). Dengan --status hanya menampilkan status migrasi.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "tampilkan status migrasi saja")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := configs.Load()
	if err != nil {
		return err
	}
	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer lg.Closer()

	db, err := database.Open(cfg, lg.Base)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	out := cmd.OutOrStdout()
	if migrateStatus {
		states, err := database.MigrationStatus(ctx, db)
		if err != nil {
			return err
		}
		for _, s := range states {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(out, "  %05d  %-8s %s\n", s.Version, state, s.Path)
		}
		return nil
	}

	n, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "migrations applied: %d\n", n)
	return nil
}
