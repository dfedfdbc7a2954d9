package quote

import (
	"regexp"
	"strings"
)

var (
	numberPattern  = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	percentPattern = regexp.MustCompile(`[+-]?\d+\.\d+%`)
)

const (
	maxPrices      = 5
	maxPercents    = 3
	volumeMinDigit = 7
)

// Summarize scrapes numbers out of free page text: the first prices, the
// first percentages and the first large number taken as volume.
func Summarize(text string) string {
	var numbers []string
	for _, n := range numberPattern.FindAllString(text, -1) {
		if strings.Trim(n, ",") != "" {
			numbers = append(numbers, n)
		}
	}
	percents := percentPattern.FindAllString(text, -1)

	var parts []string
	if len(numbers) > 0 {
		parts = append(parts, "Prices: "+strings.Join(numbers[:min(len(numbers), maxPrices)], ", "))
	}
	if len(percents) > 0 {
		parts = append(parts, "Change rates: "+strings.Join(percents[:min(len(percents), maxPercents)], ", "))
	}
	for _, n := range numbers {
		if len(strings.ReplaceAll(n, ",", "")) >= volumeMinDigit {
			parts = append(parts, "Volume: "+n)
			break
		}
	}
	return strings.Join(parts, " | ")
}
