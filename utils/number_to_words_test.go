package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "Zero", amount: 0, want: "Zero Dinars Only"},
		{name: "One dinar singular", amount: 1, want: "One Dinar Only"},
		{name: "Tens and units", amount: 21, want: "Twenty One Dinars Only"},
		{name: "Hundreds", amount: 305, want: "Three Hundred Five Dinars Only"},
		{
			name:   "Dinars and fils",
			amount: 120.5,
			want:   "One Hundred Twenty Dinars and Five Hundred Fils Only",
		},
		{
			name:   "Fils only",
			amount: 0.075,
			want:   "Zero Dinars and Seventy Five Fils Only",
		},
		{
			name:   "Thousands",
			amount: 1250,
			want:   "One Thousand Two Hundred Fifty Dinars Only",
		},
		{name: "Millions", amount: 2000000, want: "Two Million Dinars Only"},
		{
			name:   "Fils rounding carries into dinars",
			amount: 4.9996,
			want:   "Five Dinars Only",
		},
		{name: "Negative is not spelled", amount: -3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount))
		})
	}
}
