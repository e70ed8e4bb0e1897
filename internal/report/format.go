package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// FormatInt renders n with thousands separators.
func FormatInt[T ~int | ~int64 | ~uint64](n T) string {
	return numbers.Sprintf("%d", n)
}

// FormatFloat renders f with thousands separators and the given decimals.
func FormatFloat(f float64, decimals int) string {
	return numbers.Sprintf(fmt.Sprintf("%%.%df", decimals), f)
}

// FormatRelative renders a relative score, or "-" when undefined.
func FormatRelative(rel float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3f", rel)
}
