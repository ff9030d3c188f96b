// Package numfmt formats and parses amounts entered in thousand-currency-units.
package numfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ErrInvalidAmount is returned by ParseAmount for text that is not a finite
// number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount formats v with thousands separators and no fractional digits.
func Amount(v float64) string {
	return printer.Sprintf("%d", round(v))
}

// Signed formats v like Amount, prefixing positive values with "+".
func Signed(v float64) string {
	n := round(v)
	if n > 0 {
		return "+" + printer.Sprintf("%d", n)
	}
	return printer.Sprintf("%d", n)
}

// Ratio formats (now-base)/base as a percentage with one decimal, or "-"
// when base is zero.
func Ratio(base, now float64) string {
	if base == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", (now-base)/base*100)
}

// RatioPtr formats a precomputed ratio, "-" when absent.
func RatioPtr(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *r)
}

// Tick formats a chart axis value: "1.2M" from one million, "350k" below.
func Tick(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.1fM", v/1_000_000)
	}
	return fmt.Sprintf("%.0fk", v/1000)
}

// Filter drops everything except digits, commas and minus signs.
func Filter(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse turns keystroke text such as "12,000" into a number. The text goes
// through Filter first, so anything other than digits, commas and minus
// signs (a decimal point included) is dropped. Empty or invalid text yields
// 0. Parsing stops at the first character after the leading sign that is
// not a digit. Use ParseAmount for values read from files and forms.
func Parse(raw string) float64 {
	clean := strings.ReplaceAll(Filter(raw), ",", "")

	neg := false
	if strings.HasPrefix(clean, "-") {
		neg = true
		clean = clean[1:]
	}

	end := 0
	for end < len(clean) && clean[end] >= '0' && clean[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.ParseFloat(clean[:end], 64)
	if err != nil {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// ParseAmount reads a stored amount such as "12,000" or "1234.56". Commas
// and surrounding spaces are ignored and empty text is 0. Anything else must
// be a finite decimal number.
func ParseAmount(raw string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if clean == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return v, nil
}

func round(v float64) int64 {
	n := int64(math.Round(v))
	if n == 0 {
		// evita "-0"
		return 0
	}
	return n
}
