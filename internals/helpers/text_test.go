package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanTextNFC(t *testing.T) {
	decomposed := "Rene\u0301"
	require.Equal(t, "Ren\u00e9", CleanText("  "+decomposed+" "))
	require.Equal(t, "", CleanText("   "))
}
