package model

import (
	"math"
	"strconv"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	printerOnce sync.Once
	printer     *message.Printer
)

func countPrinter() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(language.AmericanEnglish)
	})
	return printer
}

// FormatCount renders a cell count with digit grouping and at most three
// fraction digits ("1,234,567.891").
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return countPrinter().Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatOpticalDensity renders an optical density with three decimals.
func FormatOpticalDensity(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatAxis renders the shortest representation of v, used for chart
// categories.
func FormatAxis(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
