package misc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 1000000 -> "1,000,000".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent renders done/total as a percentage with one decimal place.
func FormatPercent(done int, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return printer.Sprintf("%.1f%%", float64(done)/float64(total)*100)
}
