package analysis

import (
	"testing"
	"time"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func rec(t *testing.T, security, date string, low, close float64) models.PriceRecord {
	t.Helper()
	return models.PriceRecord{Security: security, Date: day(t, date), Open: low, High: close, Low: low, Close: close}
}
