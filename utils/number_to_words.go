package utils

import (
	"math"
	"strings"
)

var smallWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scaleWords = []string{"", "Thousand", "Million", "Billion"}

// hundredsWords spells 1..999.
func hundredsWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, smallWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		t := tensWords[n/10]
		if n%10 > 0 {
			t += " " + smallWords[n%10]
		}
		parts = append(parts, t)
	case n > 0:
		parts = append(parts, smallWords[n])
	}
	return strings.Join(parts, " ")
}

// numberWords spells a non-negative integer with thousand/million grouping.
func numberWords(n int64) string {
	if n == 0 {
		return smallWords[0]
	}
	var parts []string
	for i := 0; n > 0 && i < len(scaleWords); i++ {
		if g := n % 1000; g > 0 {
			w := hundredsWords(g)
			if scaleWords[i] != "" {
				w += " " + scaleWords[i]
			}
			parts = append([]string{w}, parts...)
		}
		n /= 1000
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders an invoice net total for the amount-in-words line.
// Amounts are Dinars and Fils; fils are thousandths, the same precision the
// invoice uses for weights.
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ""
	}

	dinars := int64(amount)
	fils := int64(math.Round((amount - float64(dinars)) * 1000))
	if fils >= 1000 {
		dinars++
		fils -= 1000
	}

	unit := "Dinars"
	if dinars == 1 {
		unit = "Dinar"
	}
	out := numberWords(dinars) + " " + unit
	if fils > 0 {
		out += " and " + numberWords(fils) + " Fils"
	}
	return out + " Only"
}
