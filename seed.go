package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"anggotaku_backend/internals/configs"
	database "anggotaku_backend/internals/databases"
	"anggotaku_backend/internals/helpers/dbtime"
	"anggotaku_backend/internals/logging"
	"anggotaku_backend/internals/seeds"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Isi data contoh (pin, member, event) dari file JSON",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "internals/seeds/data/demo.json", "path file seed JSON")
}

func runSeed(cmd *cobra.Command, args []string) error {
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
	if _, err := database.Migrate(ctx, db); err != nil {
		return err
	}

	res, err := seeds.RunAllSeeds(ctx, db, lg.Base, seedFile, dbtime.LoadLocation(cfg.Timezone))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded: %d pins, %d members, %d events\n", res.Pins, res.Members, res.Events)
	return nil
}
