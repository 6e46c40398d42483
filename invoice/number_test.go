package invoice

import (
	"testing"
)

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		last     string
		expected string
	}{
		{
			name:     "Zero-padded run keeps width",
			last:     "INV-000123",
			expected: "INV-000124",
		},
		{
			name:     "Unpadded run grows naturally",
			last:     "2025/INV/99",
			expected: "2025/INV/100",
		},
		{
			name:     "Empty input starts the series",
			last:     "",
			expected: "INV-000001",
		},
		{
			name:     "Whitespace only starts the series",
			last:     "   ",
			expected: "INV-000001",
		},
		{
			name:     "No trailing digits appends a run",
			last:     "ABC",
			expected: "ABC-000001",
		},
		{
			name:     "Single digit",
			last:     "B9",
			expected: "B10",
		},
		{
			name:     "Rollover extends the padded width",
			last:     "INV-000999",
			expected: "INV-001000",
		},
		{
			name:     "Digits only",
			last:     "0007",
			expected: "0008",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextInvoiceNumber(tt.last)
			if got != tt.expected {
				t.Errorf("NextInvoiceNumber(%q) = %q, want %q", tt.last, got, tt.expected)
			}
		})
	}
}
