package utils

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var labelPrinter *message.Printer

func init() {
	_ = message.Set(language.English, "%d videos",
		plural.Selectf(1, "%d",
			plural.One, "%d video",
			plural.Other, "%d videos",
		))
	labelPrinter = message.NewPrinter(language.English)
}

// VideoCountLabel returns a pluralized count label for tournament
// listings, e.g. "1 video" or "3 videos".
func VideoCountLabel(count int64) string {
	return labelPrinter.Sprintf("%d videos", count)
}
