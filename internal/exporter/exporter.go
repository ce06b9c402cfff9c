// Package exporter writes gain summaries as downloadable CSV or XLSX files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// Format names an export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// ParseFormat accepts "csv" or "xlsx"; "" means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Header is the column row of every export.
var Header = []string{"SECURITY", "SYMBOL", "LOW_PRICE", "CLOSE_PRICE", "GAIN_PERCENT"}

const sheetName = "Gains"

// Write dispatches to WriteCSV or WriteXLSX.
func Write(w io.Writer, f Format, summaries []models.GainSummary) error {
	if f == FormatXLSX {
		return WriteXLSX(w, summaries)
	}
	return WriteCSV(w, summaries)
}

// WriteCSV writes the header and one line per summary.
func WriteCSV(w io.Writer, summaries []models.GainSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range summaries {
		if err := cw.Write([]string{s.Security, s.Symbol, formatFloat(s.LowPrice), formatFloat(s.ClosePrice), formatFloat(s.GainPercent)}); err != nil {
			return fmt.Errorf("write %s: %w", s.Security, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with numeric price cells.
func WriteXLSX(w io.Writer, summaries []models.GainSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.Security, s.Symbol, s.LowPrice, s.ClosePrice, s.GainPercent}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write %s: %w", s.Security, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
