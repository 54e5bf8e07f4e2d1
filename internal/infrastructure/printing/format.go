package printing

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	numberPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

// FormatAmount groups thousands and keeps two decimals only for fractional
// amounts: 10000 -> "10,000", 1234.5 -> "1,234.50".
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return numberPrinter.Sprintf("%d", d.IntPart())
	}
	return numberPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatMoney prefixes FormatAmount with the currency code
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + " " + FormatAmount(d)
}

// Title title-cases s in English rules
func Title(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// FuncMap returns the template helpers shared by slips and emails
func FuncMap(currency string) template.FuncMap {
	return template.FuncMap{
		"money":  func(d decimal.Decimal) string { return FormatMoney(currency, d) },
		"amount": FormatAmount,
		"lineTotal": func(price decimal.Decimal, qty int) string {
			return FormatMoney(currency, price.Mul(decimal.NewFromInt(int64(qty))))
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"dateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"title": Title,
		"upper": strings.ToUpper,
		"free":  func(d decimal.Decimal) bool { return d.IsZero() },
	}
}
