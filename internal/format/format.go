// Package format renders amounts and percentages the way the admin screens
// display them.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Rupiah formats a whole-rupiah amount with Indonesian digit grouping, for
// example "Rp 125.000.000". Negative amounts keep the sign in front.
func Rupiah(amount int64) string {
	p := message.NewPrinter(language.Indonesian)
	if amount < 0 {
		return "-Rp " + p.Sprint(number.Decimal(-amount))
	}
	return "Rp " + p.Sprint(number.Decimal(amount))
}

// Percent formats p with one decimal place: "25.0%".
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
