package dto

import (
	"strings"
	"time"

	model "anggotaku_backend/internals/features/members/members/model"
	"anggotaku_backend/internals/helpers/dbtime"
)

// amount > 0 dicek di service (pesan "amount must be > 0"), bukan validator.
type PointsAdjustRequest struct {
	Amount *int    `json:"amount" validate:"required"`
	Note   *string `json:"note" validate:"omitempty,max=500"`
}

func (r *PointsAdjustRequest) Normalize() { r.Note = trimPtr(r.Note) }

type PointsResponse struct {
	Message string `json:"message"`
	CardID  string `json:"cardId"`
	Balance int    `json:"balance"`
}

type RecardRequest struct {
	NewCardID string `json:"newCardId" validate:"required,max=100"`
}

func (r *RecardRequest) Normalize() { r.NewCardID = strings.TrimSpace(r.NewCardID) }

type RecardResponse struct {
	Message   string `json:"message"`
	OldCardID string `json:"oldCardId"`
	NewCardID string `json:"newCardId"`
}

type LedgerEntryResponse struct {
	ID           int64   `json:"id"`
	Delta        int     `json:"delta"`
	BalanceAfter int     `json:"balanceAfter"`
	Kind         string  `json:"kind"`
	EventID      *int64  `json:"eventId"`
	Note         *string `json:"note"`
	CreatedAt    string  `json:"createdAt"`
}

func FromLedgerModels(rows []model.PointLedgerModel, loc *time.Location) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, LedgerEntryResponse{
			ID:           r.ID,
			Delta:        r.Delta,
			BalanceAfter: r.BalanceAfter,
			Kind:         string(r.Kind),
			EventID:      r.EventID,
			Note:         r.Note,
			CreatedAt:    dbtime.FormatWallClock(r.CreatedAt, loc),
		})
	}
	return out
}
