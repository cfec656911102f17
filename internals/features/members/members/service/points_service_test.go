package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	model "anggotaku_backend/internals/features/members/members/model"
	helper "anggotaku_backend/internals/helpers"
)

func TestAddAndRedeemPoints(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	mustCreate(t, svc, "A1", "Alex")

	_, bal, err := svc.AddPoints(ctx, "A1", 15, strPtr("bonus"))
	require.NoError(t, err)
	require.Equal(t, 15, bal)

	m, bal, err := svc.RedeemPoints(ctx, "A1", 10, nil)
	require.NoError(t, err)
	require.Equal(t, 5, bal)
	require.Equal(t, 5, m.Points)

	got, err := svc.GetByCard(ctx, "A1")
	require.NoError(t, err)
	require.Equal(t, 5, got.Points)
}

func TestPointsValidation(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	mustCreate(t, svc, "A1", "Alex")

	for _, amt := range []int{0, -3} {
		_, _, err := svc.AddPoints(ctx, "A1", amt, nil)
		require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))
		require.EqualError(t, err, "amount must be > 0")

		_, _, err = svc.RedeemPoints(ctx, "A1", amt, nil)
		require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))
	}

	_, _, err := svc.AddPoints(ctx, "Z9", 1, nil)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
}

func TestRedeemNeverGoesNegative(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	mustCreate(t, svc, "A1", "Alex")
	_, _, err := svc.AddPoints(ctx, "A1", 3, nil)
	require.NoError(t, err)

	_, _, err = svc.RedeemPoints(ctx, "A1", 4, nil)
	require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))
	require.EqualError(t, err, "insufficient points")

	got, err := svc.GetByCard(ctx, "A1")
	require.NoError(t, err)
	require.Equal(t, 3, got.Points, "balance unchanged")
}

func TestPointHistoryNewestFirst(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	mustCreate(t, svc, "A1", "Alex")

	_, _, err := svc.AddPoints(ctx, "A1", 10, nil)
	require.NoError(t, err)
	_, _, err = svc.RedeemPoints(ctx, "A1", 4, strPtr("kaos"))
	require.NoError(t, err)

	rows, total, err := svc.PointHistory(ctx, "A1", helper.Paging{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, model.LedgerRedeem, rows[0].Kind)
	require.Equal(t, -4, rows[0].Delta)
	require.Equal(t, 6, rows[0].BalanceAfter)
	require.Equal(t, "kaos", *rows[0].Note)
	require.Equal(t, model.LedgerAdd, rows[1].Kind)
	require.Equal(t, 10, rows[1].BalanceAfter)

	_, _, err = svc.PointHistory(ctx, "Z9", helper.Paging{})
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
}
