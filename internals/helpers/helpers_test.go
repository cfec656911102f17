package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPatchFieldTriState(t *testing.T) {
	var body struct {
		Title    PatchField[string] `json:"title"`
		Subtitle PatchField[string] `json:"subtitle"`
		Status   PatchField[string] `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Retreat","subtitle":null}`), &body))

	v, ok := body.Title.Get()
	require.True(t, ok)
	require.Equal(t, "Retreat", *v)
	require.True(t, body.Subtitle.IsNull())
	require.False(t, body.Status.Present)
	require.False(t, body.Status.IsNull())
}

func TestStatusOfAndMapStoreError(t *testing.T) {
	require.Equal(t, http.StatusOK, StatusOf(nil))
	require.Equal(t, http.StatusNotFound, StatusOf(NotFound("x")))
	require.Equal(t, http.StatusBadRequest, StatusOf(&ValidationErrors{}))
	require.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))

	require.Equal(t, http.StatusConflict, StatusOf(MapStoreError(gorm.ErrDuplicatedKey)))
	require.Equal(t, http.StatusConflict, StatusOf(MapStoreError(&pgconn.PgError{Code: "23503", ConstraintName: "fk"})))

	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsUniqueViolation(nil))
}

func TestErrorHandlerRendersAndReports(t *testing.T) {
	var reported []error
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(func(_ *fiber.Ctx, err error) {
		reported = append(reported, err)
	})})
	app.Get("/nf", func(c *fiber.Ctx) error { return FromFiberError(c, NotFound("Event not found")) })
	app.Get("/boom", func(c *fiber.Ctx) error { return FromFiberError(c, errors.New("db down")) })
	app.Get("/val", func(c *fiber.Ctx) error {
		return FromFiberError(c, &ValidationErrors{Fields: map[string]string{"title": "wajib diisi"}})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nf", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var er ErrorResponse
	decode(t, resp.Body, &er)
	require.Equal(t, "Event not found", er.Detail)
	require.Equal(t, "NOT_FOUND", er.ErrorCode)
	require.Empty(t, reported)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	decode(t, resp.Body, &er)
	require.NotContains(t, er.Detail, "db down")
	require.Len(t, reported, 1)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/val", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	er = ErrorResponse{}
	decode(t, resp.Body, &er)
	require.Equal(t, "wajib diisi", er.Errors["title"])
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got []Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = append(got, ResolvePaging(c, 20, 50))
		return nil
	})
	for _, q := range []string{"/", "/?page=2&per_page=10", "/?limit=500", "/?page=-1"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, q, nil))
		require.NoError(t, err)
	}
	require.False(t, got[0].Enabled)
	require.Equal(t, Paging{Enabled: true, Page: 2, PerPage: 10, Offset: 10, Limit: 10}, got[1])
	require.Equal(t, 50, got[2].PerPage)
	require.Equal(t, Paging{Enabled: true, Page: 1, PerPage: 20, Offset: 0, Limit: 20}, got[3])
}

func TestValidateMessages(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required"`
		Point *int   `json:"basicPoint" validate:"omitempty,gte=0"`
	}
	neg := -1
	err := Validate(&req{Point: &neg})
	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "wajib diisi", ve.Fields["title"])
	require.Equal(t, "minimal 0", ve.Fields["basicPoint"])
}

func decode(t *testing.T, r io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}
