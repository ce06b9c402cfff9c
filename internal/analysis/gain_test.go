package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

func threeSessions(t *testing.T) []models.PriceRecord {
	return []models.PriceRecord{
		rec(t, "ABC", "01-JAN-2024", 10, 11),
		rec(t, "ABC", "02-JAN-2024", 12, 13),
		rec(t, "ABC", "03-JAN-2024", 14, 15),
	}
}

func TestDaywiseGain_BaselineByWindow(t *testing.T) {
	cases := []struct {
		n        int
		baseline float64
		gain     float64
	}{
		{n: 1, baseline: 14, gain: (15.0 - 14.0) / 14.0 * 100},
		{n: 2, baseline: 12, gain: 25},
		{n: 3, baseline: 10, gain: 50},
		{n: 5, baseline: 10, gain: 50}, // fewer sessions than the window: earliest low
	}

	for _, tc := range cases {
		got, err := DaywiseGain(threeSessions(t), tc.n)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tc.baseline, got[0].LowPrice, "n=%d", tc.n)
		assert.Equal(t, 15.0, got[0].ClosePrice, "comparison never depends on n")
		assert.InDelta(t, tc.gain, got[0].GainPercent, 1e-9, "n=%d", tc.n)
	}
}

func TestDaywiseGain_SortsByDateNotInputOrder(t *testing.T) {
	in := threeSessions(t)
	shuffled := []models.PriceRecord{in[2], in[0], in[1]}
	before := append([]models.PriceRecord(nil), shuffled...)

	got, err := DaywiseGain(shuffled, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got[0].LowPrice)
	assert.Equal(t, 15.0, got[0].ClosePrice)
	assert.Equal(t, before, shuffled, "input must not be mutated")
}

func TestDaywiseGain_SingleRecordFallback(t *testing.T) {
	got, err := DaywiseGain([]models.PriceRecord{rec(t, "SOLO", "05-FEB-2024", 8, 10)}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 8.0, got[0].LowPrice)
	assert.Equal(t, 25.0, got[0].GainPercent)
}

func TestDaywiseGain_ZeroBaseline(t *testing.T) {
	got, err := DaywiseGain([]models.PriceRecord{
		rec(t, "ZERO", "01-JAN-2024", 0, 5),
		rec(t, "ZERO", "02-JAN-2024", 0, 7),
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].GainPercent)
	assert.False(t, math.IsNaN(got[0].GainPercent))
}

func TestDaywiseGain_DuplicateDatesStableAndKept(t *testing.T) {
	a := rec(t, "DUP", "01-JAN-2024", 10, 11)
	b := rec(t, "DUP", "02-JAN-2024", 20, 21)
	b2 := rec(t, "DUP", "02-JAN-2024", 30, 31)
	b.Symbol, b2.Symbol = "FIRST", "SECOND"

	// sorted: a, b, b2 (tie kept in input order) → n=2 baseline is b, latest is b2
	got, err := DaywiseGain([]models.PriceRecord{b, a, b2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got[0].LowPrice)
	assert.Equal(t, 31.0, got[0].ClosePrice)
	assert.Equal(t, "SECOND", got[0].Symbol, "symbol comes from the most recent record")
}

func TestDaywiseGain_GroupsOrderedBySecurity(t *testing.T) {
	got, err := DaywiseGain([]models.PriceRecord{
		rec(t, "ZED", "01-JAN-2024", 1, 2),
		rec(t, "ALPHA", "01-JAN-2024", 1, 3),
		rec(t, "", "01-JAN-2024", 1, 3),
		rec(t, "MID", "01-JAN-2024", 1, 4),
	}, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ALPHA", "MID", "ZED"}, []string{got[0].Security, got[1].Security, got[2].Security})
}

func TestDaywiseGain_Deterministic(t *testing.T) {
	in := append(threeSessions(t), rec(t, "XYZ", "02-JAN-2024", 3, 4), rec(t, "XYZ", "01-JAN-2024", 2, 5))
	first, err := DaywiseGain(in, 2)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := DaywiseGain(in, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDaywiseGain_InvalidWindow(t *testing.T) {
	_, err := DaywiseGain(threeSessions(t), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestDaywiseGain_Empty(t *testing.T) {
	got, err := DaywiseGain(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAtLeast(t *testing.T) {
	in := []models.GainSummary{
		{Security: "A", GainPercent: 0.5},
		{Security: "B", GainPercent: 1},
		{Security: "C", GainPercent: 12},
	}
	got := AtLeast(in, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Security)
	assert.Equal(t, "C", got[1].Security)
	assert.Len(t, in, 3)
}
