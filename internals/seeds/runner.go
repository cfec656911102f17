package seeds

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	evModel "anggotaku_backend/internals/features/events/events/model"
	memberModel "anggotaku_backend/internals/features/members/members/model"
	pinModel "anggotaku_backend/internals/features/pins/pins/model"
	"anggotaku_backend/internals/helpers/dbtime"
)

// SeedFile: format data/demo.json
type SeedFile struct {
	Pins []struct {
		Name string `json:"name"`
		Pin  string `json:"pin"`
	} `json:"pins"`
	Members []struct {
		CardID     string  `json:"cardId"`
		Name       string  `json:"name"`
		Wilayah    *string `json:"wilayah"`
		Lingkungan *string `json:"lingkungan"`
	} `json:"members"`
	Events []struct {
		Title      string  `json:"title"`
		Subtitle   *string `json:"subtitle"`
		Datetime   string  `json:"datetime"`
		BasicPoint int     `json:"basicPoint"`
	} `json:"events"`
}

type Result struct {
	Pins, Members, Events int
}

// RunAllSeeds membaca file JSON lalu insert yang belum ada (aman dijalankan berulang).
func RunAllSeeds(ctx context.Context, db *gorm.DB, log *zap.Logger, filePath string, loc *time.Location) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("📥 Membaca file seed", zap.String("path", filePath))
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("baca file seed: %w", err)
	}
	var f SeedFile
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode JSON seed: %w", err)
	}
	return Run(ctx, db, log, &f, loc)
}

func Run(ctx context.Context, db *gorm.DB, log *zap.Logger, f *SeedFile, loc *time.Location) (*Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range f.Pins {
			row := pinModel.PinModel{Name: p.Name, Pin: p.Pin}
			r := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if r.Error != nil {
				return fmt.Errorf("seed pin %q: %w", p.Name, r.Error)
			}
			res.Pins += int(r.RowsAffected)
		}

		for _, m := range f.Members {
			row := memberModel.MemberModel{CardID: m.CardID, Name: m.Name, Wilayah: m.Wilayah, Lingkungan: m.Lingkungan}
			r := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "card_id"}}, DoNothing: true}).Create(&row)
			if r.Error != nil {
				return fmt.Errorf("seed member %q: %w", m.CardID, r.Error)
			}
			res.Members += int(r.RowsAffected)
		}

		// event tidak punya kunci unik: (title, starts_at) dianggap identitas
		for _, e := range f.Events {
			startsAt, err := dbtime.ParseWallClock(e.Datetime, loc)
			if err != nil {
				return fmt.Errorf("seed event %q: %w", e.Title, err)
			}
			var n int64
			if err := tx.Model(&evModel.EventModel{}).
				Where("title = ? AND starts_at = ?", e.Title, startsAt).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				log.Info("ℹ️ Event sudah ada, dilewati", zap.String("title", e.Title))
				continue
			}
			row := evModel.EventModel{
				Title: e.Title, Subtitle: e.Subtitle, StartsAt: startsAt,
				Status: evModel.StatusPlanned, BasicPoint: e.BasicPoint,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed event %q: %w", e.Title, err)
			}
			res.Events++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("✅ Seed selesai", zap.Int("pins", res.Pins), zap.Int("members", res.Members), zap.Int("events", res.Events))
	return &res, nil
}
