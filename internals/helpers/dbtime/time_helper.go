// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals yang di-set oleh middleware WithLocation
const LocAppLoc = "app_loc"

// Format "datetime" yang dikirim/diterima client (tanpa zona, jam dinding lokal).
const (
	WallClockLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
)

var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999999",
}

// LoadLocation: nama zona → *time.Location, fallback UTC.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WithLocation menyimpan zona aplikasi ke c.Locals supaya controller tidak perlu config.
func WithLocation(loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return func(c *fiber.Ctx) error {
		c.Locals(LocAppLoc, loc)
		return c.Next()
	}
}

// GetLocation: ambil zona dari locals, fallback UTC.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}
	if v := c.Locals(LocAppLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}

// ParseWallClock: RFC3339 (zona ikut string) atau jam dinding tanpa zona (pakai loc).
// Hasil selalu UTC, presisi detik.
func ParseWallClock(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("datetime kosong")
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Truncate(time.Second), nil
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("format datetime tidak dikenal: %q", s)
}

// FormatWallClock: waktu (biasanya UTC dari DB) → "YYYY-MM-DDTHH:MM:SS" di zona loc.
func FormatWallClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(WallClockLayout)
}

// Versi pointer, biar gampang dipakai di DTO yg pakai *time.Time
func FormatWallClockPtr(t *time.Time, loc *time.Location) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := FormatWallClock(*t, loc)
	return &s
}

// ParseDate: "YYYY-MM-DD" → UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("format tanggal harus YYYY-MM-DD: %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NowUTC: jam sekarang (UTC, presisi detik) untuk kolom timestamp.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
