package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// NextInvoiceNumber produces the next booking number from the last known
// one: the trailing digit run is incremented with its zero-padding width
// preserved ("INV-000123" -> "INV-000124"). A value with no trailing digits
// gets "-000001" appended; an empty value starts the series at "INV-000001".
//
// This is display convenience only. Uniqueness is enforced by the database
// index on booking_no, not by this routine.
func NextInvoiceNumber(last string) string {
	if strings.TrimSpace(last) == "" {
		return "INV-000001"
	}

	m := trailingDigits.FindStringSubmatch(last)
	if m == nil {
		return last + "-000001"
	}

	n, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		// Digit run too long to parse; treat like a non-numeric suffix.
		return last + "-000001"
	}
	return m[1] + fmt.Sprintf("%0*d", len(m[2]), n+1)
}
