// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Enabled bool
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging membaca ?page= & ?per_page= (atau alias ?limit=).
// Kalau keduanya tidak ada → paging mati (list penuh, perilaku lama).
// maxPerPage: batasi per_page maksimum (0 = tanpa batas)
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page"))
	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit"))
	}
	if pageStr == "" && perPageStr == "" {
		return Paging{}
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Paging{
		Enabled: true,
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

// Apply menempelkan LIMIT/OFFSET ke query kalau paging aktif.
func (p Paging) Apply(tx *gorm.DB) *gorm.DB {
	if !p.Enabled {
		return tx
	}
	return tx.Limit(p.Limit).Offset(p.Offset)
}
