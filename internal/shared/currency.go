package shared

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 14.500,00".
func FormatBRL(amount float64) string {
	return brPrinter.Sprintf("R$ %.2f", amount)
}

// FormatBRLCompact renders an amount in compact form for dashboard cards,
// e.g. "R$ 14,5K" for 14500.
func FormatBRLCompact(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return brPrinter.Sprintf("R$ %.1fM", amount/1_000_000)
	case amount >= 1_000:
		return brPrinter.Sprintf("R$ %.1fK", amount/1_000)
	default:
		return FormatBRL(amount)
	}
}

// FormatDisplayDate renders an ISO calendar date as dd/MM/yyyy for UI labels.
// The input must already be zero-padded ISO; malformed values pass through.
func FormatDisplayDate(iso string) string {
	if len(iso) != 10 {
		return iso
	}
	return fmt.Sprintf("%s/%s/%s", iso[8:10], iso[5:7], iso[0:4])
}
