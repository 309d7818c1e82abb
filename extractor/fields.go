// Package extractor derives receipt fields from recognized text lines.
package extractor

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reCNPJ  = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	reDate  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	reTotal = regexp.MustCompile(`(?:TOTAL|VALOR\sTOTAL)\s*(?:R\$)?\s*[\s.:]*(\d[\d.]*,\d{2})`)
	// any decimal-shaped token, used when no TOTAL anchor exists
	reAmount = regexp.MustCompile(`\d+[.,]\d{2}`)
)

// ErrNoTotal is returned by TotalDecimal when no total was extracted.
var ErrNoTotal = errors.New("no total extracted")

// Fields holds the values found on a receipt. A nil field was not found.
type Fields struct {
	Total *string `json:"total"`
	Date  *string `json:"date"`
	TaxID *string `json:"cnpj"`
}

// Complete reports whether the fields needed to record a note (total and date) are present.
func (f Fields) Complete() bool {
	return f.Total != nil && f.Date != nil
}

// TotalDecimal parses Total as a decimal number.
// Totals written with a thousands separator (e.g. "1.234.56") do not parse.
func (f Fields) TotalDecimal() (decimal.Decimal, error) {
	if f.Total == nil {
		return decimal.Zero, ErrNoTotal
	}
	return decimal.NewFromString(*f.Total)
}

// Extract runs the default strategy over lines.
func Extract(lines []string) Fields {
	return RegexStrategy{}.Extract(lines)
}

// Document flattens recognized lines into the single upper-cased string the patterns run on.
func Document(lines []string) string {
	return strings.ToUpper(strings.Join(lines, " "))
}

func findTaxID(doc string) *string {
	return firstMatch(reCNPJ, doc)
}

func findDate(doc string) *string {
	return firstMatch(reDate, doc)
}

func findTotal(doc string) *string {
	if m := reTotal.FindStringSubmatch(doc); m != nil {
		return normalizeAmount(m[1])
	}
	all := reAmount.FindAllString(doc, -1)
	if len(all) == 0 {
		return nil
	}
	return normalizeAmount(all[len(all)-1])
}

// normalizeAmount swaps the decimal comma for a dot. Thousands dots are kept as-is.
func normalizeAmount(s string) *string {
	v := strings.ReplaceAll(s, ",", ".")
	return &v
}

func firstMatch(re *regexp.Regexp, doc string) *string {
	m := re.FindString(doc)
	if m == "" {
		return nil
	}
	return &m
}
