package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxRowsGlobalArrayWins(t *testing.T) {
	raw := decode(t, `{
		"box_weight": [5, 7],
		"boxes": {
			"1": {"weight": 99, "items": [{"weight": 1}]},
			"2": {"weight": 99, "items": [{"weight": 1}]}
		}
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 2)
	assert.Equal(t, "5.000", rows[0].Weight)
	assert.Equal(t, "7.000", rows[1].Weight)
	assert.Equal(t, "B1", rows[0].BoxNo)
	assert.Equal(t, "B2", rows[1].BoxNo)
}

func TestBoxRowsItemSumFallback(t *testing.T) {
	raw := decode(t, `{
		"items": [
			{"box_no": "1", "weight": 2.5},
			{"box_no": "1", "weight": 3.5}
		]
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "6.000", rows[0].Weight)
}

func TestBoxRowsExplicitBoxWeight(t *testing.T) {
	raw := decode(t, `{
		"boxes": {"1": {"weight": 4, "items": [{"weight": 1}]}}
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "4.000", rows[0].Weight)
}

func TestBoxRowsWeightShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "JSON-encoded array string",
			raw:  `{"box_weight": "[1.5, 2.5]"}`,
			want: []string{"1.500", "2.500"},
		},
		{
			name: "Comma-separated string",
			raw:  `{"box_weight": "1.5, 2.5"}`,
			want: []string{"1.500", "2.500"},
		},
		{
			name: "Object keyed by box number",
			raw:  `{"box_weight": {"2": 7, "1": 5}}`,
			want: []string{"5.000", "7.000"},
		},
		{
			name: "Bare number",
			raw:  `{"box_weight": 3}`,
			want: []string{"3.000"},
		},
		{
			name: "JSON-encoded object string",
			raw:  `{"box_weight": "{\"1\": 2, \"2\": 4}"}`,
			want: []string{"2.000", "4.000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BoxRows(decode(t, tt.raw))
			require.Len(t, rows, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w, rows[i].Weight)
			}
		})
	}
}

func TestBoxRowsWeightArrayLongerThanBoxes(t *testing.T) {
	// Upstream sometimes emits weights for boxes with no item rows; the
	// table still shows every weight.
	raw := decode(t, `{
		"box_weight": [1, 2, 3],
		"boxes": {"1": {"items": []}}
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 3)
	assert.Equal(t, "3.000", rows[2].Weight)
	assert.Equal(t, "B3", rows[2].BoxNo)
}

func TestBoxRowsUnparseableGlobalPositionSkipped(t *testing.T) {
	raw := decode(t, `{
		"box_weight": ["x", 2],
		"boxes": {"1": {"weight": 9}, "2": {"weight": 9}}
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 2)
	assert.Equal(t, "9.000", rows[0].Weight)
	assert.Equal(t, "2.000", rows[1].Weight)
}

func TestBoxRowsUngroupedItemsDefaultToBoxOne(t *testing.T) {
	raw := decode(t, `{
		"items": [{"weight": 1}, {"weight": 2}, {"box_no": "2", "weight": 4}]
	}`)

	rows := BoxRows(raw)
	require.Len(t, rows, 2)
	assert.Equal(t, "3.000", rows[0].Weight)
	assert.Equal(t, "4.000", rows[1].Weight)
}

func TestBoxRowsNoSignals(t *testing.T) {
	assert.Empty(t, BoxRows(decode(t, `{}`)))
	assert.Empty(t, BoxRows(nil))
	assert.Empty(t, BoxRows(decode(t, `{"box_weight": "", "boxes": 12}`)))
}

func TestBoxRowsCargoWrapped(t *testing.T) {
	raw := decode(t, `{"cargo": {"box_weight": [8]}}`)
	rows := BoxRows(raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "8.000", rows[0].Weight)
}
