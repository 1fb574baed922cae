package numtowords_test

import (
	"testing"

	"github.com/plotbooks/plotbooks_backend/internal/utils/numtowords"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInteger(t *testing.T) {
	cases := map[int64]string{
		0:         "Zero",
		7:         "Seven",
		19:        "Nineteen",
		40:        "Forty",
		99:        "Ninety Nine",
		100:       "One Hundred",
		105:       "One Hundred Five",
		999:       "Nine Hundred Ninety Nine",
		1000:      "One Thousand",
		12345:     "Twelve Thousand Three Hundred Forty Five",
		100000:    "One Lakh",
		123456:    "One Lakh Twenty Three Thousand Four Hundred Fifty Six",
		10000000:  "One Crore",
		25075000:  "Two Crore Fifty Lakh Seventy Five Thousand",
		123456789: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
	}
	for n, want := range cases {
		assert.Equal(t, want, numtowords.Integer(n), "n=%d", n)
	}
}

func TestRupees(t *testing.T) {
	assert.Equal(t,
		"Rupees One Lakh Only",
		numtowords.Rupees(decimal.NewFromInt(100000)))
	assert.Equal(t,
		"Rupees Four Hundred Fifty and Fifty Paise Only",
		numtowords.Rupees(decimal.RequireFromString("450.50")))
	assert.Equal(t,
		"Rupees Zero Only",
		numtowords.Rupees(decimal.Zero))
	// Rounds half up to two places.
	assert.Equal(t,
		"Rupees One and One Paise Only",
		numtowords.Rupees(decimal.RequireFromString("1.005")))
}
