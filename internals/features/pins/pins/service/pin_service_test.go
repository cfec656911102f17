package service

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	model "anggotaku_backend/internals/features/pins/pins/model"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/testutil/testdb"
)

var fourDigits = regexp.MustCompile(`^[0-9]{4}$`)

func TestGenerateIsIdempotentPerName(t *testing.T) {
	svc := NewPinService(testdb.NewSQLite(t))
	ctx := context.Background()

	first, err := svc.Generate(ctx, "  Budi ")
	require.NoError(t, err)
	require.True(t, first.Created)
	require.Equal(t, "Budi", first.Pin.Name)
	require.Regexp(t, fourDigits, first.Pin.Pin)

	second, err := svc.Generate(ctx, "Budi")
	require.NoError(t, err)
	require.False(t, second.Created)
	require.Equal(t, first.Pin.ID, second.Pin.ID)
	require.Equal(t, first.Pin.Pin, second.Pin.Pin)
}

func TestGenerateRejectsBlankName(t *testing.T) {
	svc := NewPinService(testdb.NewSQLite(t))
	_, err := svc.Generate(context.Background(), "   ")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))
}

func TestGenerateRetriesOnCodeCollision(t *testing.T) {
	db := testdb.NewSQLite(t)
	require.NoError(t, db.Create(&model.PinModel{Name: "Ani", Pin: "0000"}).Error)

	// crypto/rand.Int membaca 2 byte untuk max 10000: nol dulu (tabrakan "0000"), lalu 0x0001 → "0001"
	svc := NewPinService(db)
	svc.Rand = bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x01})

	res, err := svc.Generate(context.Background(), "Citra")
	require.NoError(t, err)
	require.True(t, res.Created)
	require.Equal(t, "0001", res.Pin.Pin)
}

func TestGenerateGivesUpWhenCodesExhausted(t *testing.T) {
	db := testdb.NewSQLite(t)
	require.NoError(t, db.Create(&model.PinModel{Name: "Ani", Pin: "0000"}).Error)

	svc := NewPinService(db)
	svc.MaxAttempts = 3
	svc.Rand = bytes.NewReader(make([]byte, 64)) // selalu "0000"

	_, err := svc.Generate(context.Background(), "Dodi")
	require.Error(t, err)
	require.Equal(t, fiber.StatusConflict, helper.StatusOf(err))
}

func TestVerifyAndResolve(t *testing.T) {
	svc := NewPinService(testdb.NewSQLite(t))
	ctx := context.Background()

	gen, err := svc.Generate(ctx, "Eka")
	require.NoError(t, err)

	got, err := svc.Verify(ctx, gen.Pin.Pin)
	require.NoError(t, err)
	require.Equal(t, "Eka", got.Name)

	// repeatable
	again, err := svc.Verify(ctx, gen.Pin.Pin)
	require.NoError(t, err)
	require.Equal(t, got.ID, again.ID)

	unknown := "9999"
	if gen.Pin.Pin == unknown {
		unknown = "9998"
	}
	_, err = svc.Verify(ctx, unknown)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
	require.EqualError(t, err, "Invalid or unknown PIN")

	_, err = svc.Resolve(ctx, unknown)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
}
