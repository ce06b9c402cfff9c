package ingestion

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// trailingDDMMYY captures the last six digits of an archive stem.
var trailingDDMMYY = regexp.MustCompile(`(\d{2})(\d{2})(\d{2})$`)

var monthAbbrev = map[string]string{
	"01": "JAN", "02": "FEB", "03": "MAR", "04": "APR", "05": "MAY", "06": "JUN",
	"07": "JUL", "08": "AUG", "09": "SEP", "10": "OCT", "11": "NOV", "12": "DEC",
}

// SessionDate derives the session date of an archive from its filename.
//
// The stem (base name up to the first '.') must end in six digits read as
// DDMMYY. YY <= 50 maps to 20YY, anything else to 19YY. The result is
// formatted DD-MMM-YYYY with an upper-case month, e.g.
//
//	FO210324.zip → 21-MAR-2024
//	FO211299.zip → 21-DEC-1999
//
// A stem without six trailing digits yields "". A month outside 01..12 is
// kept as its two digits, which later fails date parsing and drops the rows.
func SessionDate(name string) string {
	stem := filepath.Base(name)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	m := trailingDDMMYY.FindStringSubmatch(stem)
	if m == nil {
		return ""
	}
	day, month, yy := m[1], m[2], m[3]

	year := "19" + yy
	if n, _ := strconv.Atoi(yy); n <= 50 {
		year = "20" + yy
	}
	if abbr, ok := monthAbbrev[month]; ok {
		month = abbr
	}
	return fmt.Sprintf("%s-%s-%s", day, month, year)
}
