// Package quote holds the per-session selection and the discount, VAT and totals
// arithmetic built on top of the pricing engine.
package quote

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value read leniently from user input. It accepts JSON numbers
// and strings in German ("1.234,56") or plain ("1234.56") notation; anything
// unparseable reads as 0.
type Amount float64

func (a Amount) Float() float64 {
	return float64(a)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null" || trimmed == "":
		*a = 0
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(ParseAmount(s))
	default:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			v = 0
		}
		*a = Amount(finite(v))
	}
	return nil
}

// ParseAmount reads a number typed into a form. A comma is the decimal separator
// when present; dots before it are thousands separators. Without a comma a single
// dot followed by exactly three digits is also read as a thousands separator.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 || looksLikeThousands(s) {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// finite maps NaN and the infinities, which ParseFloat accepts by name, to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func looksLikeThousands(s string) bool {
	idx := strings.Index(s, ".")
	if idx <= 0 {
		return false
	}
	frac := s[idx+1:]
	if len(frac) != 3 {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
