package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/guttosm/bhavpulse/internal/analysis"
	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/storage"
)

type stubRepo struct {
	rows []models.SessionRow
	err  error
}

func (s *stubRepo) Save(_ []models.SessionRow, _ bool) error { return nil }
func (s *stubRepo) Load() ([]models.SessionRow, error)     { return s.rows, s.err }
func (s *stubRepo) Exists() bool                           { return s.err == nil }
func (s *stubRepo) Path() string                           { return "stub.csv" }

var _ storage.TableRepository = (*stubRepo)(nil)

func row(symbol, security, low, close, date string) models.SessionRow {
	return models.SessionRow{Symbol: symbol, Security: security, Open: low, High: close, Low: low, Close: close, Date: date}
}

// table: ABC rises 10→15 over three sessions, XYZ is flat, Nifty 50 trades high.
func table() []models.SessionRow {
	return []models.SessionRow{
		row("ABC", "ABC INDUSTRIES", "100", "110", "01-JAN-2024"),
		row("ABC", "ABC INDUSTRIES", "120", "130", "02-JAN-2024"),
		row("ABC", "ABC INDUSTRIES", "140", "150", "03-JAN-2024"),
		row("XYZ", "XYZ LTD", "95", "95", "02-JAN-2024"),
		row("XYZ", "XYZ LTD", "95", "95", "03-JAN-2024"),
		row("", "Nifty 50", "22000", "22400", "03-JAN-2024"),
		row("BAD", "BAD CO", "", "10", "03-JAN-2024"),
	}
}

func writeRef(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func missingRefs(t *testing.T) ReferencePaths {
	dir := t.TempDir()
	return ReferencePaths{FnoFile: filepath.Join(dir, "fno.xlsx"), SymbolFile: filepath.Join(dir, "symbols.csv")}
}

func securitiesOf(rows []models.GainSummary) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Security)
	}
	return out
}

func TestGains_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(c *Criteria)
		want      []string
		wantWarns []string
	}{
		{
			name:      "defaults",
			mutate:    func(*Criteria) {},
			want:      []string{"ABC INDUSTRIES", "Nifty 50"},
			wantWarns: []string{WarnFnoMissing},
		},
		{
			name:      "others bucket",
			mutate:    func(c *Criteria) { c.SecurityType = analysis.TypeOthers },
			want:      []string{"ABC INDUSTRIES"},
			wantWarns: []string{WarnFnoMissing},
		},
		{
			name:      "zero threshold keeps flat securities",
			mutate:    func(c *Criteria) { c.GainThreshold = 0; c.MinClose = "" },
			want:      []string{"ABC INDUSTRIES", "Nifty 50", "XYZ LTD"},
			wantWarns: []string{WarnFnoMissing},
		},
		{
			name:      "invalid min close is ignored",
			mutate:    func(c *Criteria) { c.GainThreshold = 0; c.MinClose = "abc" },
			want:      []string{"ABC INDUSTRIES", "Nifty 50", "XYZ LTD"},
			wantWarns: []string{WarnFnoMissing, WarnInvalidMinClose},
		},
		{
			name:      "nothing passes",
			mutate:    func(c *Criteria) { c.GainThreshold = 100 },
			want:      nil,
			wantWarns: []string{WarnFnoMissing, WarnNoSecurities},
		},
		{
			name:      "symbol lookup without reference file",
			mutate:    func(c *Criteria) { c.ReferenceOnly = true; c.Symbol = "ABC" },
			want:      []string{"ABC INDUSTRIES"},
			wantWarns: []string{WarnFnoMissing, WarnSymbolsMissing},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAnalyzerService(&stubRepo{rows: table()}, missingRefs(t))
			c := DefaultCriteria()
			tc.mutate(&c)

			rep, err := svc.Gains(context.Background(), c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := securitiesOf(rep.Rows); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
			if !reflect.DeepEqual(rep.Warnings, tc.wantWarns) {
				t.Fatalf("want warnings %v got %v", tc.wantWarns, rep.Warnings)
			}
		})
	}
}

func TestGains_WindowAndTitle(t *testing.T) {
	svc := NewAnalyzerService(&stubRepo{rows: table()}, missingRefs(t))
	c := DefaultCriteria()
	c.Days = 2
	c.Security = "ABC INDUSTRIES"

	rep, err := svc.Gains(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Title != "Equities with High Gains over 2 Days" || rep.Days != 2 {
		t.Fatalf("unexpected header: %+v", rep)
	}
	if len(rep.Rows) != 1 {
		t.Fatalf("want 1 row got %d", len(rep.Rows))
	}
	got := rep.Rows[0]
	if got.LowPrice != 120 || got.ClosePrice != 150 || got.GainPercent != 25 || got.Symbol != "ABC" {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestGains_FnoRestriction(t *testing.T) {
	refs := missingRefs(t)
	refs.FnoFile = writeRef(t, "fno.csv", "SECURITY\nxyz limited\n")
	svc := NewAnalyzerService(&stubRepo{rows: table()}, refs)
	c := DefaultCriteria()
	c.GainThreshold = 0

	rep, err := svc.Gains(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := securitiesOf(rep.Rows); !reflect.DeepEqual(got, []string{"XYZ LTD"}) {
		t.Fatalf("want only XYZ LTD got %v", got)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", rep.Warnings)
	}
}

func TestGains_ReferenceOnly(t *testing.T) {
	refs := missingRefs(t)
	refs.SymbolFile = writeRef(t, "symbols.csv", "SYMBOL\nxyz\n")
	svc := NewAnalyzerService(&stubRepo{rows: table()}, refs)
	c := DefaultCriteria()
	c.GainThreshold = 0
	c.ReferenceOnly = true

	rep, err := svc.Gains(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := securitiesOf(rep.Rows); !reflect.DeepEqual(got, []string{"XYZ LTD"}) {
		t.Fatalf("want only XYZ LTD got %v", got)
	}
}

func TestGains_Errors(t *testing.T) {
	svc := NewAnalyzerService(&stubRepo{err: storage.ErrTableNotFound}, missingRefs(t))
	if _, err := svc.Gains(context.Background(), DefaultCriteria()); !errors.Is(err, storage.ErrTableNotFound) {
		t.Fatalf("want ErrTableNotFound got %v", err)
	}

	svc = NewAnalyzerService(&stubRepo{rows: table()}, missingRefs(t))
	c := DefaultCriteria()
	c.Days = 0
	if _, err := svc.Gains(context.Background(), c); !errors.Is(err, analysis.ErrInvalidWindow) {
		t.Fatalf("want ErrInvalidWindow got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Gains(ctx, DefaultCriteria()); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled got %v", err)
	}
}

func TestCandles(t *testing.T) {
	svc := NewAnalyzerService(&stubRepo{rows: table()}, missingRefs(t))

	c := DefaultCriteria()
	if _, err := svc.Candles(context.Background(), c); !errors.Is(err, ErrSecurityRequired) {
		t.Fatalf("want ErrSecurityRequired got %v", err)
	}

	c.Security = "ABC INDUSTRIES"
	series, err := svc.Candles(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Candles) != 3 || series.Candles[0].Low != 100 || series.Candles[2].Close != 150 {
		t.Fatalf("unexpected candles: %+v", series.Candles)
	}

	// XYZ closes at 95 which passes the default min close; 200 filters it out.
	c.Security = "XYZ LTD"
	c.MinClose = "200"
	series, err = svc.Candles(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Candles) != 0 || !slices.Contains(series.Warnings, WarnNoCandles) {
		t.Fatalf("want empty series with warning, got %+v", series)
	}
}

func TestOptions(t *testing.T) {
	svc := NewAnalyzerService(&stubRepo{rows: table()}, missingRefs(t))
	got, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantSec := []string{AllSecurities, "ABC INDUSTRIES", "XYZ LTD", "Nifty 50"}
	if !reflect.DeepEqual(got.Securities, wantSec) {
		t.Fatalf("want %v got %v", wantSec, got.Securities)
	}
	if !reflect.DeepEqual(got.Symbols, []string{"ABC", "XYZ"}) {
		t.Fatalf("unexpected symbols %v", got.Symbols)
	}
	if !reflect.DeepEqual(got.SecurityTypes, []string{"Nifty", "2.5%", "Others", "NONE"}) {
		t.Fatalf("unexpected types %v", got.SecurityTypes)
	}
	if got.MaxCustomDays != 30 || len(got.DayRanges) != 4 {
		t.Fatalf("unexpected day choices %+v", got)
	}
}
