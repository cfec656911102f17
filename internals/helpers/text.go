package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText: trim + NFC, supaya "é" yang diketik beda keyboard tetap dianggap sama (unik & urutan nama).
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
