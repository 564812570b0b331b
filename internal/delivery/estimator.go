// Package delivery estimates production time for a set of selected services.
package delivery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exposeprofi/proposals/internal/catalog"
)

// Line is the part of a selected service the estimate depends on.
type Line struct {
	ServiceID string
	Quantity  int
}

// Estimate is a delivery window in working days. The zero value is the
// uncalculated sentinel.
type Estimate struct {
	MinDays    int  `json:"minDays"`
	MaxDays    int  `json:"maxDays"`
	Calculated bool `json:"calculated"`
}

// Uncalculated is returned when nothing contributes a delivery time.
var Uncalculated = Estimate{}

// String renders the window as "min-max", or "" when uncalculated.
func (e Estimate) String() string {
	if !e.Calculated {
		return ""
	}
	return fmt.Sprintf("%d-%d", e.MinDays, e.MaxDays)
}

// ParseRange reads a window rendered by String. Anything else is Uncalculated.
func ParseRange(s string) Estimate {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Uncalculated
	}
	minDays, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || minDays <= 0 {
		return Uncalculated
	}
	maxDays, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || maxDays < minDays {
		return Uncalculated
	}
	return Estimate{MinDays: minDays, MaxDays: maxDays, Calculated: true}
}

type Estimator struct {
	rules map[string]catalog.DeliveryRule
}

func NewEstimator(rules map[string]catalog.DeliveryRule) *Estimator {
	copied := make(map[string]catalog.DeliveryRule, len(rules))
	for id, rule := range rules {
		copied[id] = rule
	}
	return &Estimator{rules: copied}
}

// Days returns the production days for one line, or 0 when it does not count.
func (e *Estimator) Days(line Line) int {
	if line.Quantity < 1 {
		return 0
	}
	rule, ok := e.rules[line.ServiceID]
	if !ok {
		return 0
	}
	return rule.BaseDays + rule.AdditionalPerUnit*(line.Quantity-1)
}

// Estimate takes the longest line, since services are produced in parallel, and
// pads it by 20% rounded up.
func (e *Estimator) Estimate(lines []Line) Estimate {
	longest := 0
	for _, line := range lines {
		if days := e.Days(line); days > longest {
			longest = days
		}
	}
	if longest <= 0 {
		return Uncalculated
	}
	return Estimate{
		MinDays:    longest,
		MaxDays:    (longest*12 + 9) / 10,
		Calculated: true,
	}
}
