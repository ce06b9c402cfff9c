package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

func TestCandles_FilteredAndSorted(t *testing.T) {
	in := []models.PriceRecord{
		rec(t, "ABC", "03-JAN-2024", 14, 15),
		rec(t, "XYZ", "01-JAN-2024", 1, 2),
		rec(t, "ABC", "01-JAN-2024", 10, 11),
	}
	got := Candles(in, "ABC")
	require.Len(t, got, 2)
	assert.Equal(t, day(t, "01-JAN-2024"), got[0].Date)
	assert.Equal(t, 15.0, got[1].Close)
	assert.Empty(t, Candles(in, "NOPE"))
}

func TestSecuritiesAndSymbols_Distinct(t *testing.T) {
	a := rec(t, "ABC", "01-JAN-2024", 1, 2)
	a.Symbol = "ABC"
	b := rec(t, "XYZ", "01-JAN-2024", 1, 2)
	in := []models.PriceRecord{a, b, a}

	assert.Equal(t, []string{"ABC", "XYZ"}, Securities(in))
	assert.Equal(t, []string{"ABC"}, SymbolsOf(in))
}
