package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"anggotaku_backend/internals/configs"
	"anggotaku_backend/internals/testutil/testdb"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &configs.Config{Timezone: "UTC", RequestTimeout: 5 * time.Second}
	return NewApp(cfg, testdb.NewSQLite(t), nil)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func doList(t *testing.T, app *fiber.App, path string) []map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])

	code, body = do(t, app, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Connected", body["database"])

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	code, body = do(t, app, http.MethodGet, "/tidak-ada", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestAttendanceFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	code, pin := do(t, app, http.MethodPost, "/pin/generate?name=Budi", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, pin["pin"], 4)

	code, ev := do(t, app, http.MethodPost, "/events",
		`{"title":"Retreat","datetime":"2025-01-01T10:00","basicPoint":10,"creatorPin":"`+pin["pin"].(string)+`"}`)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "2025-01-01T10:00:00", ev["datetime"])
	require.Equal(t, "planned", ev["status"])
	require.Equal(t, "Budi", ev["createdByName"])
	eventPath := "/events/" + jsonID(ev["id"])

	code, _ = do(t, app, http.MethodPost, "/members", `{"cardId":"A1","name":"Alex"}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, app, http.MethodPost, "/members", `{"cardId":"A1","name":"Alex lagi"}`)
	require.Equal(t, http.StatusConflict, code)

	code, tap := do(t, app, http.MethodPost, eventPath+"/tapin", `{"cardId":"A1"}`)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "Tap-in recorded", tap["message"])
	require.Contains(t, tap, "event_id")
	require.Contains(t, tap, "tapped_at")

	code, again := do(t, app, http.MethodPost, eventPath+"/tapin", `{"cardId":"A1"}`)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "Already joined", again["message"])
	require.Equal(t, tap["tapped_at"], again["tapped_at"])

	code, graded := do(t, app, http.MethodPost, eventPath+"/grade/aspects",
		`{"cardId":"A1","disiplin":3,"tanggungJawab":2,"percayaDiri":4,"keaktifan":1}`)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 10, graded["score"])

	members := doList(t, app, eventPath+"/members")
	require.Len(t, members, 1)
	require.Equal(t, "A1", members[0]["cardId"])
	require.EqualValues(t, 10, members[0]["score"])

	code, detail := do(t, app, http.MethodGet, "/members/A1", "")
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 10, detail["points"])
	require.EqualValues(t, 10, detail["totalScore"])
	require.Len(t, detail["events"], 1)

	code, red := do(t, app, http.MethodPost, "/members/A1/points/redeem", `{"amount":25}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "insufficient points", red["detail"])

	code, red = do(t, app, http.MethodPost, "/members/A1/points/redeem", `{"amount":4}`)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 6, red["balance"])

	history := doList(t, app, "/members/A1/points/history")
	require.Len(t, history, 2)
	require.Equal(t, "redeem", history[0]["kind"])
	require.Equal(t, "tap_in", history[1]["kind"])

	code, _ = do(t, app, http.MethodDelete, eventPath, "")
	require.Equal(t, http.StatusConflict, code)

	code, rec := do(t, app, http.MethodPost, "/members/A1/recard", `{"newCardId":"A2"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "cardId updated", rec["message"])
	code, _ = do(t, app, http.MethodGet, "/members/A2", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, app, http.MethodDelete, "/members/A2", "")
	require.Equal(t, http.StatusNoContent, code)
	code, _ = do(t, app, http.MethodDelete, eventPath, "")
	require.Equal(t, http.StatusNoContent, code)
}

func TestValidationAndNotFoundOverHTTP(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/events", `{"datetime":"2025-01-01T10:00"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, body["errors"], "title")

	code, body = do(t, app, http.MethodPost, "/events/999/tapin", `{"cardId":"A1"}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Event not found", body["detail"])

	code, _ = do(t, app, http.MethodGet, "/events/abc", "")
	require.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, app, http.MethodPost, "/pin/verify", `{"pin":"0000"}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Invalid or unknown PIN", body["detail"])
}

func jsonID(v any) string {
	return strconv.FormatInt(int64(v.(float64)), 10)
}
