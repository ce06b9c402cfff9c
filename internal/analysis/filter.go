package analysis

import (
	"fmt"
	"strings"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// Predicate selects records. Predicates never mutate the record.
type Predicate func(models.PriceRecord) bool

// Apply returns, in input order, the records accepted by every predicate.
// Nil predicates are skipped, so optional filters can be passed unconditionally.
// The input slice is never modified and applying the same predicates twice
// yields the same result as once.
func Apply(records []models.PriceRecord, preds ...Predicate) []models.PriceRecord {
	out := make([]models.PriceRecord, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if p != nil && !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// SecurityType is the security-family bucket derived from the name prefix.
type SecurityType string

const (
	TypeNifty        SecurityType = "Nifty"
	TypeTwoPointFive SecurityType = "2.5%"
	TypeOthers       SecurityType = "Others"
	TypeNone         SecurityType = "NONE"
)

// Name prefixes that define the Nifty and 2.5% buckets.
const (
	niftyPrefix        = "Nifty"
	twoPointFivePrefix = "2.5"
)

// SecurityTypes lists the buckets in the order the selection control shows them.
var SecurityTypes = []SecurityType{TypeNifty, TypeTwoPointFive, TypeOthers, TypeNone}

// ParseSecurityType accepts a bucket name case-insensitively; "" means NONE.
func ParseSecurityType(s string) (SecurityType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeNone, nil
	}
	for _, t := range SecurityTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown security type %q", s)
}

// BySecurityType returns the bucket predicate, or nil for NONE.
func BySecurityType(t SecurityType) Predicate {
	switch t {
	case TypeNifty:
		return func(r models.PriceRecord) bool { return strings.HasPrefix(r.Security, niftyPrefix) }
	case TypeTwoPointFive:
		return func(r models.PriceRecord) bool { return strings.HasPrefix(r.Security, twoPointFivePrefix) }
	case TypeOthers:
		return func(r models.PriceRecord) bool {
			return !strings.HasPrefix(r.Security, niftyPrefix) && !strings.HasPrefix(r.Security, twoPointFivePrefix)
		}
	default:
		return nil
	}
}

// SecurityIs matches the security name exactly.
func SecurityIs(name string) Predicate {
	return func(r models.PriceRecord) bool { return r.Security == name }
}

// SymbolIs matches the ticker exactly.
func SymbolIs(symbol string) Predicate {
	return func(r models.PriceRecord) bool { return r.Symbol == symbol }
}

// MinClose keeps records whose close is at least v.
func MinClose(v float64) Predicate {
	return func(r models.PriceRecord) bool { return r.Close >= v }
}

// SymbolIn keeps records whose upper-cased ticker is in set.
func SymbolIn(set map[string]struct{}) Predicate {
	return func(r models.PriceRecord) bool {
		_, ok := set[strings.ToUpper(r.Symbol)]
		return ok
	}
}

// FirstWordMatches keeps records whose leading name token contains any of
// the reference tokens as a substring. An empty list restricts nothing.
func FirstWordMatches(tokens []string) Predicate {
	if len(tokens) == 0 {
		return nil
	}
	return func(r models.PriceRecord) bool {
		for _, tok := range tokens {
			if strings.Contains(r.FirstWord, tok) {
				return true
			}
		}
		return false
	}
}
