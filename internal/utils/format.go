package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// usd prints numbers with en-US grouping so dollar amounts read
// "$1,234.50" in notifications.
var usd = message.NewPrinter(language.AmericanEnglish)

// FormatDollars renders an amount as a US currency string.
func FormatDollars(amount float64) string {
	return usd.Sprintf("$%.2f", amount)
}

// FormatLongDate renders a date in long form, e.g. "March 7, 2026",
// for human-facing notification bodies.
func FormatLongDate(t time.Time) string {
	return t.UTC().Format("January 2, 2006")
}
