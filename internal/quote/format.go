package quote

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var germanPrinter = message.NewPrinter(language.German)

// Round2 rounds half away from zero to two decimal places. Non-finite values
// round to 0.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatAmount renders v for a German document: "1.071,00".
func FormatAmount(v float64) string {
	return germanPrinter.Sprintf("%.2f", Round2(v))
}

// FormatEUR renders v with a trailing euro sign: "1.071,00 €".
func FormatEUR(v float64) string {
	return FormatAmount(v) + " €"
}

// FormattedTotals is the presentation form of Totals.
type FormattedTotals struct {
	SubtotalNet    string `json:"subtotalNet"`
	DiscountAmount string `json:"discountAmount"`
	TotalNet       string `json:"totalNetPrice"`
	TotalVAT       string `json:"totalVat"`
	TotalGross     string `json:"totalGrossPrice"`
}

func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		SubtotalNet:    FormatEUR(t.SubtotalNet),
		DiscountAmount: FormatEUR(t.DiscountAmount),
		TotalNet:       FormatEUR(t.TotalNet),
		TotalVAT:       FormatEUR(t.TotalVAT),
		TotalGross:     FormatEUR(t.TotalGross),
	}
}

// Rounded returns a copy with every value rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		SubtotalNet:    Round2(t.SubtotalNet),
		DiscountAmount: Round2(t.DiscountAmount),
		TotalNet:       Round2(t.TotalNet),
		TotalVAT:       Round2(t.TotalVAT),
		TotalGross:     Round2(t.TotalGross),
	}
}
