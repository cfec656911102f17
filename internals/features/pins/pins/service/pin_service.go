// file: internals/features/pins/pins/service/pin_service.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "anggotaku_backend/internals/features/pins/pins/model"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
	"anggotaku_backend/internals/metrics"
)

const (
	pinSpace           = 10000 // 0000..9999
	defaultMaxAttempts = 20
	maxNameLen         = 120
)

type PinService struct {
	DB *gorm.DB
	// Rand sumber acak; nil → crypto/rand.
	Rand        io.Reader
	MaxAttempts int
}

func NewPinService(db *gorm.DB) *PinService {
	return &PinService{DB: db, MaxAttempts: defaultMaxAttempts}
}

type GenerateResult struct {
	Pin     model.PinModel
	Created bool
}

func (s *PinService) newCode() (string, error) {
	r := s.Rand
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, big.NewInt(pinSpace))
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func (s *PinService) findByName(ctx context.Context, name string) (*model.PinModel, error) {
	var row model.PinModel
	err := s.DB.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Generate: nama sudah punya PIN → kembalikan yang lama. Kalau belum, buat kode acak unik.
// Tabrakan kode dicoba ulang; insert nama yang sama secara bersamaan → pemenang dikembalikan.
func (s *PinService) Generate(ctx context.Context, name string) (*GenerateResult, error) {
	name = helper.CleanText(name)
	if name == "" {
		return nil, helper.InvalidArgument("name is required")
	}
	if len(name) > maxNameLen {
		return nil, helper.InvalidArgument(fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}

	if existing, err := s.findByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		metrics.PinsGenerated.WithLabelValues("existing").Inc()
		return &GenerateResult{Pin: *existing}, nil
	}

	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return nil, err
		}
		row := model.PinModel{Name: name, Pin: code, CreatedAt: dbtime.NowUTC()}
		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return nil, helper.MapStoreError(res.Error)
		}
		if res.RowsAffected == 1 {
			metrics.PinsGenerated.WithLabelValues("created").Inc()
			return &GenerateResult{Pin: row, Created: true}, nil
		}

		// konflik: nama (request paralel) atau kode yang sudah dipakai
		if existing, err := s.findByName(ctx, name); err != nil {
			return nil, err
		} else if existing != nil {
			metrics.PinsGenerated.WithLabelValues("existing").Inc()
			return &GenerateResult{Pin: *existing}, nil
		}
	}
	return nil, helper.Conflict("Could not allocate a unique PIN, try again")
}

func (s *PinService) findByCode(ctx context.Context, code string) (*model.PinModel, error) {
	var row model.PinModel
	err := s.DB.WithContext(ctx).Where("pin = ?", strings.TrimSpace(code)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Verify: lookup murni, bisa diulang.
func (s *PinService) Verify(ctx context.Context, code string) (*model.PinModel, error) {
	row, err := s.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if row == nil {
		metrics.PinVerifications.WithLabelValues("unknown").Inc()
		return nil, helper.NotFound("Invalid or unknown PIN")
	}
	metrics.PinVerifications.WithLabelValues("verified").Inc()
	return row, nil
}

// Resolve dipakai atribusi pembuat (creatorPin) di events & members.
func (s *PinService) Resolve(ctx context.Context, code string) (*model.PinModel, error) {
	row, err := s.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, helper.NotFound("PIN not found")
	}
	return row, nil
}
