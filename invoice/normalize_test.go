package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalizeAliasPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{
			name: "Second-priority alias used when first absent",
			raw:  map[string]interface{}{"invoice_no": "INV-42"},
			want: "INV-42",
		},
		{
			name: "First-priority alias wins over second",
			raw:  map[string]interface{}{"booking_no": "BK-1", "invoice_no": "INV-42"},
			want: "BK-1",
		},
		{
			name: "Camel-case alias",
			raw:  map[string]interface{}{"bookingNo": "BK-7"},
			want: "BK-7",
		},
		{
			name: "Empty string alias falls through",
			raw:  map[string]interface{}{"booking_no": "", "booking_number": "BK-9"},
			want: "BK-9",
		},
		{
			name: "Nothing set defaults to empty",
			raw:  map[string]interface{}{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).BookingNo)
		})
	}
}

func TestNormalizeScalarChains(t *testing.T) {
	raw := decode(t, `{
		"lrl_tracking_code": "LRL123",
		"total": 250,
		"vat": "12.5",
		"gross_weight": 30.25,
		"payment_mode": "cash",
		"branch_name": "Kochi"
	}`)

	inv := Normalize(raw)
	assert.Equal(t, "LRL123", inv.TrackCode)
	assert.Equal(t, 250.0, inv.TotalCost)
	assert.Equal(t, 12.5, inv.VatCost)
	assert.Equal(t, 30.25, inv.TotalWeight)
	assert.Equal(t, "cash", inv.PaymentMethod)
	assert.Equal(t, "Kochi", inv.Branch)
	// net_total falls back down its own chain to total.
	assert.Equal(t, 250.0, inv.NetTotal)
}

func TestNormalizeCargoWrap(t *testing.T) {
	raw := decode(t, `{"cargo": {"booking_no": "BK-5", "track_code": "T1"}}`)
	inv := Normalize(raw)
	assert.Equal(t, "BK-5", inv.BookingNo)
	assert.Equal(t, "T1", inv.TrackCode)
}

func TestNormalizeBoxMapFlatteningOrder(t *testing.T) {
	raw := decode(t, `{
		"boxes": {
			"2": {"items": [{"name": "B"}]},
			"10": {"items": [{"name": "C"}]},
			"1": {"items": [{"name": "A"}]}
		}
	}`)

	inv := Normalize(raw)
	require.Len(t, inv.Items, 3)
	assert.Equal(t, "A", inv.Items[0].Description)
	assert.Equal(t, "B", inv.Items[1].Description)
	assert.Equal(t, "C", inv.Items[2].Description)
	assert.Equal(t, "1", inv.Items[0].BoxNumber)
	assert.Equal(t, "10", inv.Items[2].BoxNumber)
}

func TestNormalizeBoxArrayKeepsOrder(t *testing.T) {
	raw := decode(t, `{
		"boxes": [
			{"items": [{"name": "first"}]},
			{"items": [{"name": "second"}]}
		]
	}`)

	inv := Normalize(raw)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "first", inv.Items[0].Description)
	assert.Equal(t, "second", inv.Items[1].Description)
}

func TestNormalizeFlatItems(t *testing.T) {
	raw := decode(t, `{
		"items": [
			{"description": "shirts", "qty": 2, "unit_price": 5, "total_price": 99, "weight": 1.5},
			{"description": "books", "total_price": 42}
		]
	}`)

	inv := Normalize(raw)
	require.Len(t, inv.Items, 2)

	// total_price is recomputed when qty and unit_price are both numeric.
	assert.Equal(t, 10.0, inv.Items[0].TotalPrice)
	// With a factor missing the upstream value is kept.
	assert.Equal(t, 42.0, inv.Items[1].TotalPrice)
}

func TestNormalizeNoOfPieces(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "Root level wins over nested",
			raw:  `{"no_of_pieces": 5, "cargo": {"no_of_pieces": 3}}`,
			want: 5,
		},
		{
			name: "Nested used when root absent",
			raw:  `{"cargo": {"no_of_pieces": 3}}`,
			want: 3,
		},
		{
			name: "Falls back to box count",
			raw:  `{"boxes": {"1": {}, "2": {}, "3": {}}}`,
			want: 3,
		},
		{
			name: "Defaults to zero",
			raw:  `{}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(decode(t, tt.raw)).NoOfPieces)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := decode(t, `{
		"booking_no": "BK-1",
		"boxes": {"1": {"items": [{"name": "x", "qty": 1, "unit_price": 2}]}},
		"sender_name": "A", "receiver_name": "B"
	}`)

	assert.Equal(t, Normalize(raw), Normalize(raw))
}

func TestNormalizeNeverPanics(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{name: "Nil input", raw: nil},
		{name: "Empty object", raw: map[string]interface{}{}},
		{name: "Boxes is a number", raw: map[string]interface{}{"boxes": 7.0}},
		{name: "Items is a string", raw: map[string]interface{}{"items": "oops"}},
		{name: "Cargo is null", raw: map[string]interface{}{"cargo": nil}},
		{name: "Nested garbage", raw: map[string]interface{}{"boxes": map[string]interface{}{"1": "not-a-box"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Normalize(tt.raw)
			require.NotNil(t, inv)
			assert.NotNil(t, inv.Items)
			assert.Equal(t, "", inv.BookingNo)
			assert.Equal(t, 0.0, inv.NetTotal)
		})
	}
}
