package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dto "anggotaku_backend/internals/features/events/events/dto"
	model "anggotaku_backend/internals/features/events/events/model"
	pinService "anggotaku_backend/internals/features/pins/pins/service"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/testutil/testdb"
)

var wib = time.FixedZone("WIB", 7*3600)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newSvc(t *testing.T) (*EventService, *gorm.DB) {
	db := testdb.NewSQLite(t)
	return NewEventService(db, pinService.NewPinService(db)), db
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newSvc(t)
	req := &dto.CreateEventRequest{Title: "Retreat", Datetime: "2025-01-01T10:00"}
	req.Normalize()

	ev, err := svc.Create(context.Background(), req, wib)
	require.NoError(t, err)
	require.NotZero(t, ev.ID)
	require.Equal(t, model.StatusPlanned, ev.Status)
	require.Zero(t, ev.BasicPoint)
	require.True(t, time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC).Equal(ev.StartsAt))

	got, err := svc.Get(context.Background(), ev.ID)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01T10:00:00", dto.FromModel(got, wib).Datetime)
}

func TestCreateRejectsBadDatetime(t *testing.T) {
	svc, _ := newSvc(t)
	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{Title: "X", Datetime: "kemarin"}, wib)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))
}

func TestCreateWithCreatorPin(t *testing.T) {
	svc, db := newSvc(t)
	ctx := context.Background()

	pins := pinService.NewPinService(db)
	gen, err := pins.Generate(ctx, "Panitia")
	require.NoError(t, err)

	ev, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Rapat", Datetime: "2025-02-01T19:00", CreatorPin: strPtr(gen.Pin.Pin),
	}, wib)
	require.NoError(t, err)
	require.Equal(t, "Panitia", *ev.CreatedByName)
	require.Equal(t, gen.Pin.ID, *ev.CreatedByPinID)

	unknown := "9999"
	if gen.Pin.Pin == unknown {
		unknown = "9998"
	}
	_, err = svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Rapat 2", Datetime: "2025-02-02T19:00", CreatorPin: strPtr(unknown),
	}, wib)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
}

func TestListNewestFirstAndPaging(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	for _, dt := range []string{"2025-01-01T10:00", "2025-03-01T10:00", "2025-02-01T10:00"} {
		_, err := svc.Create(ctx, &dto.CreateEventRequest{Title: "E " + dt, Datetime: dt}, wib)
		require.NoError(t, err)
	}

	rows, total, err := svc.List(ctx, helper.Paging{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, "E 2025-03-01T10:00", rows[0].Title)
	require.Equal(t, "E 2025-02-01T10:00", rows[1].Title)
	require.Equal(t, "E 2025-01-01T10:00", rows[2].Title)

	rows, total, err = svc.List(ctx, helper.Paging{Enabled: true, Page: 2, PerPage: 2, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	require.Equal(t, "E 2025-01-01T10:00", rows[0].Title)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	ev, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Retreat", Subtitle: strPtr("Pemuda"), Datetime: "2025-01-01T10:00", BasicPoint: intPtr(10),
	}, wib)
	require.NoError(t, err)

	// kosong → apa adanya
	same, err := svc.Update(ctx, ev.ID, &dto.PatchEventRequest{}, wib)
	require.NoError(t, err)
	require.Equal(t, "Retreat", same.Title)

	upd, err := svc.Update(ctx, ev.ID, &dto.PatchEventRequest{
		Status:   helper.Set("done"),
		Subtitle: helper.Null[string](),
	}, wib)
	require.NoError(t, err)
	require.Equal(t, "done", upd.Status)
	require.Nil(t, upd.Subtitle)
	require.Equal(t, "Retreat", upd.Title)
	require.Equal(t, 10, upd.BasicPoint)

	_, err = svc.Update(ctx, ev.ID, &dto.PatchEventRequest{Title: helper.Null[string]()}, wib)
	require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))

	_, err = svc.Update(ctx, ev.ID, &dto.PatchEventRequest{BasicPoint: helper.Set(-1)}, wib)
	require.Equal(t, http.StatusBadRequest, helper.StatusOf(err))

	_, err = svc.Update(ctx, 999, &dto.PatchEventRequest{Status: helper.Set("x")}, wib)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
}

func TestDeleteForbiddenWhenReferenced(t *testing.T) {
	svc, db := newSvc(t)
	ctx := context.Background()
	ev, err := svc.Create(ctx, &dto.CreateEventRequest{Title: "Misa", Datetime: "2025-01-05T08:00"}, wib)
	require.NoError(t, err)

	require.NoError(t, db.Exec(`INSERT INTO members (card_id, name, points, total_score) VALUES ('A1', 'Alex', 0, 0)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO attendance_links (event_id, member_id, tapped_at)
		SELECT ?, id, CURRENT_TIMESTAMP FROM members WHERE card_id = 'A1'`, ev.ID).Error)

	err = svc.Delete(ctx, ev.ID)
	require.Equal(t, http.StatusConflict, helper.StatusOf(err))

	require.NoError(t, db.Exec(`DELETE FROM attendance_links`).Error)
	require.NoError(t, svc.Delete(ctx, ev.ID))

	_, err = svc.Get(ctx, ev.ID)
	require.Equal(t, http.StatusNotFound, helper.StatusOf(err))
	require.Equal(t, http.StatusNotFound, helper.StatusOf(svc.Delete(ctx, ev.ID)))
}
