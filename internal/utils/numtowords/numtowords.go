// Package numtowords renders rupee amounts as words using the Indian
// numbering system (thousand, lakh, crore). Used for printable receipt
// payloads.
package numtowords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// twoDigits converts 0..99.
func twoDigits(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// threeDigits converts 0..999.
func threeDigits(n int64) string {
	if n < 100 {
		return twoDigits(n)
	}
	s := ones[n/100] + " Hundred"
	if n%100 != 0 {
		s += " " + twoDigits(n%100)
	}
	return s
}

// Integer converts a non-negative integer to Indian-system words.
// Grouping after the hundreds is in pairs: thousand, lakh, crore.
func Integer(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + Integer(-n)
	}

	parts := []string{}
	if crore := n / 10000000; crore > 0 {
		// Crores can themselves exceed 99 (e.g. 123 crore); recurse.
		parts = append(parts, Integer(crore)+" Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigits(lakh)+" Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigits(thousand)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, threeDigits(n))
	}
	return strings.Join(parts, " ")
}

// Rupees converts a decimal amount to words, e.g.
// "Rupees One Lakh Twenty Three Thousand Four Hundred Fifty Six and Seventy Eight Paise Only".
// The amount is rounded to two decimal places first.
func Rupees(amount decimal.Decimal) string {
	amount = amount.Round(2)
	negative := amount.IsNegative()
	if negative {
		amount = amount.Abs()
	}

	whole := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	b.WriteString("Rupees ")
	if negative {
		b.WriteString("Minus ")
	}
	b.WriteString(Integer(whole))
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(twoDigits(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}
