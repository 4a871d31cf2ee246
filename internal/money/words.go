package money

import "strings"

var (
	onesWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
		"Eighty", "Ninety",
	}
	scaleWords = []string{
		"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion",
		"Quintillion",
	}
)

// NumberToWords spells a non-negative integer as English cardinal words:
// 1050 -> "One Thousand Fifty", 999 -> "Nine Hundred Ninety-Nine". No "and"
// is inserted. Negative input yields "Zero". The scale table reaches
// Quintillion, so every int64 value has a spelling.
func NumberToWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}

	var groups []string
	for n > 0 {
		groups = append(groups, hundredsToWords(int(n%1000)))
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == "" {
			continue
		}
		part := groups[i]
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func hundredsToWords(n int) string {
	if n == 0 {
		return ""
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		word := tensWords[n/10]
		if n%10 != 0 {
			word += "-" + onesWords[n%10]
		}
		parts = append(parts, word)
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
