package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/guttosm/bhavpulse/internal/analysis"
	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/logger"
	"github.com/guttosm/bhavpulse/internal/reference"
	"github.com/guttosm/bhavpulse/internal/storage"
)

// AllSecurities selects every security.
const AllSecurities = "All"

// MaxCustomDays bounds the custom trailing window.
const MaxCustomDays = 30

// DayRanges are the preset window choices; "Custom" takes 1..MaxCustomDays.
var DayRanges = []string{"1 Day", "2 Days", "3 Days", "Custom"}

// Criteria is one analysis request.
//
// Fields:
//   - Security: exact security name, or AllSecurities / "" for every security.
//   - SecurityType: name-prefix bucket; analysis.TypeNone disables it.
//   - Days: trailing window length N (>= 1).
//   - MinClose: raw close lower bound; blank disables it, unparseable text is ignored with a warning.
//   - GainThreshold: summaries below this gain % are dropped.
//   - Symbol: exact ticker, "" disables it.
//   - ReferenceOnly: keep only tickers listed in the symbol reference file.
type Criteria struct {
	Security      string
	SecurityType  analysis.SecurityType
	Days          int
	MinClose      string
	GainThreshold float64
	Symbol        string
	ReferenceOnly bool
}

// DefaultCriteria mirrors the initial state of the selection controls.
func DefaultCriteria() Criteria {
	return Criteria{
		Security:      AllSecurities,
		SecurityType:  analysis.TypeNone,
		Days:          1,
		MinClose:      "90",
		GainThreshold: 1,
	}
}

func (c Criteria) singleSecurity() bool {
	return c.Security != "" && c.Security != AllSecurities
}

// ReferencePaths locates the optional reference lists.
type ReferencePaths struct {
	FnoFile    string // SECURITY column; first words restrict the universe
	SymbolFile string // SYMBOL column; used when Criteria.ReferenceOnly is set
}

// AnalyzerService answers analysis requests over the combined table.
// Every call reads the table afresh so a completed merge is picked up at once.
type AnalyzerService interface {
	Gains(ctx context.Context, c Criteria) (*models.GainReport, error)
	Candles(ctx context.Context, c Criteria) (*models.CandleSeries, error)
	Options(ctx context.Context) (*models.Choices, error)
}

type analyzerService struct {
	repo storage.TableRepository
	refs ReferencePaths
}

// NewAnalyzerService builds an analyzer reading from repo.
func NewAnalyzerService(repo storage.TableRepository, refs ReferencePaths) AnalyzerService {
	return &analyzerService{repo: repo, refs: refs}
}

// universe loads and cleans the table and applies the F&O first-word restriction.
func (s *analyzerService) universe(ctx context.Context) ([]models.PriceRecord, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rows, err := s.repo.Load()
	if err != nil {
		return nil, nil, err
	}
	records := analysis.Clean(rows)

	var warnings []string
	securities, err := reference.Load(s.refs.FnoFile, reference.SecurityColumn)
	if err != nil {
		warnings = append(warnings, referenceWarning(err, WarnFnoMissing))
		return records, warnings, nil
	}
	return analysis.Apply(records, analysis.FirstWordMatches(reference.FirstWords(securities))), warnings, nil
}

func referenceWarning(err error, missing string) string {
	if errors.Is(err, reference.ErrNotFound) {
		return missing
	}
	logger.With("service").Warn().Err(err).Msg("reference list unusable")
	return err.Error()
}

// predicates turns c into row filters; problems become warnings, never errors.
func (s *analyzerService) predicates(c Criteria) ([]analysis.Predicate, []string) {
	var (
		preds    []analysis.Predicate
		warnings []string
	)
	preds = append(preds, analysis.BySecurityType(c.SecurityType))
	if c.singleSecurity() {
		preds = append(preds, analysis.SecurityIs(c.Security))
	}
	if c.Symbol != "" {
		preds = append(preds, analysis.SymbolIs(c.Symbol))
	}
	if raw := strings.TrimSpace(c.MinClose); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			preds = append(preds, analysis.MinClose(v))
		} else {
			warnings = append(warnings, WarnInvalidMinClose)
		}
	}
	if c.ReferenceOnly {
		symbols, err := reference.Load(s.refs.SymbolFile, reference.SymbolColumn)
		if err != nil {
			warnings = append(warnings, referenceWarning(err, WarnSymbolsMissing))
		} else {
			preds = append(preds, analysis.SymbolIn(reference.Symbols(symbols)))
		}
	}
	return preds, warnings
}

func (s *analyzerService) filtered(ctx context.Context, c Criteria) ([]models.PriceRecord, []string, error) {
	records, warnings, err := s.universe(ctx)
	if err != nil {
		return nil, nil, err
	}
	preds, w := s.predicates(c)
	return analysis.Apply(records, preds...), append(warnings, w...), nil
}

// Title is the bar chart heading for an N-day window.
func Title(days int) string {
	return fmt.Sprintf("Equities with High Gains over %d Days", days)
}

func (s *analyzerService) Gains(ctx context.Context, c Criteria) (*models.GainReport, error) {
	records, warnings, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	summaries, err := analysis.DaywiseGain(records, c.Days)
	if err != nil {
		return nil, err
	}
	rows := analysis.AtLeast(summaries, c.GainThreshold)
	if len(rows) == 0 {
		warnings = append(warnings, WarnNoSecurities)
	}

	logger.With("service").Debug().
		Int("days", c.Days).
		Int("records", len(records)).
		Int("summaries", len(rows)).
		Msg("gains computed")

	return &models.GainReport{Days: c.Days, Title: Title(c.Days), Rows: rows, Warnings: warnings}, nil
}

func (s *analyzerService) Candles(ctx context.Context, c Criteria) (*models.CandleSeries, error) {
	if !c.singleSecurity() {
		return nil, ErrSecurityRequired
	}
	records, warnings, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	candles := analysis.Candles(records, c.Security)
	if len(candles) == 0 {
		warnings = append(warnings, WarnNoCandles)
	}
	return &models.CandleSeries{Security: c.Security, Candles: candles, Warnings: warnings}, nil
}

func (s *analyzerService) Options(ctx context.Context) (*models.Choices, error) {
	records, warnings, err := s.universe(ctx)
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(analysis.SecurityTypes))
	for _, t := range analysis.SecurityTypes {
		types = append(types, string(t))
	}
	return &models.Choices{
		Securities:    append([]string{AllSecurities}, analysis.Securities(records)...),
		Symbols:       analysis.SymbolsOf(records),
		SecurityTypes: types,
		DayRanges:     DayRanges,
		MaxCustomDays: MaxCustomDays,
		Warnings:      warnings,
	}, nil
}
