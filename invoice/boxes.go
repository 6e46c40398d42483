package invoice

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// BoxRow is one printable row of the invoice's box/weight summary table.
type BoxRow struct {
	Sl     int    `json:"sl"`
	BoxNo  string `json:"box_no"`
	Weight string `json:"weight"`
}

// boxEntry is the single internal representation every boxes shape (keyed
// map, array, JSON-encoded string) is parsed into before any reconciliation
// runs, so shape sniffing happens exactly once.
type boxEntry struct {
	key       string
	weight    float64
	hasWeight bool
	items     []map[string]interface{}
}

// BoxRows reconciles up to three weakly-consistent weight signals into an
// ordered row list. Per-row priority: the operator-entered global box_weight
// array, then an explicit per-box weight, then the sum of that box's item
// weights, then 0. Weights are formatted to exactly 3 decimal places and
// labels are positional (B1, B2, ...) because raw box keys can be arbitrary
// strings. No signal at all yields an empty list.
func BoxRows(raw map[string]interface{}) []BoxRow {
	cargo := unwrapCargo(raw)

	weights := parseBoxWeights(cargo["box_weight"])
	entries := parseBoxes(cargo["boxes"])
	if len(entries) == 0 {
		entries = groupItemsAsBoxes(cargo["items"])
	}

	// A box_weight array longer than the discovered key set still produces
	// rows; upstream has been seen emitting weights for boxes with no items.
	n := len(entries)
	if len(weights) > n {
		n = len(weights)
	}

	rows := make([]BoxRow, 0, n)
	for i := 0; i < n; i++ {
		var w float64
		switch {
		case i < len(weights) && !math.IsNaN(weights[i]) && !math.IsInf(weights[i], 0):
			w = weights[i]
		case i < len(entries) && entries[i].hasWeight:
			w = entries[i].weight
		case i < len(entries):
			w = sumItemWeights(entries[i].items)
		}
		rows = append(rows, BoxRow{
			Sl:     i + 1,
			BoxNo:  fmt.Sprintf("B%d", i+1),
			Weight: fmt.Sprintf("%.3f", w),
		})
	}
	return rows
}

func sumItemWeights(items []map[string]interface{}) float64 {
	var sum float64
	for _, it := range items {
		if f, ok := firstFloat(it, itemWtAliases...); ok {
			sum += f
		}
	}
	return sum
}

// parseBoxes normalizes any supported boxes shape into ordered entries.
// Keyed maps are ordered by ascending numeric key; arrays keep their order;
// JSON-encoded strings are decoded and re-parsed. Anything else yields nil.
func parseBoxes(v interface{}) []boxEntry {
	switch boxes := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(boxes))
		for k := range boxes {
			keys = append(keys, k)
		}
		sortKeysNumeric(keys)

		out := make([]boxEntry, 0, len(keys))
		for _, k := range keys {
			out = append(out, boxEntryFrom(k, boxes[k]))
		}
		return out

	case []interface{}:
		out := make([]boxEntry, 0, len(boxes))
		for i, b := range boxes {
			e := boxEntryFrom("", b)
			if e.key == "" {
				e.key = fmt.Sprintf("%d", i+1)
			}
			out = append(out, e)
		}
		return out

	case string:
		var decoded interface{}
		if err := json.Unmarshal([]byte(v.(string)), &decoded); err != nil {
			return nil
		}
		return parseBoxes(decoded)
	}
	return nil
}

func boxEntryFrom(key string, v interface{}) boxEntry {
	e := boxEntry{key: key}
	m, ok := v.(map[string]interface{})
	if !ok {
		return e
	}
	if e.key == "" {
		e.key = stringAt(m, itemBoxAliases...)
	}
	if f, ok := firstFloat(m, "weight", "box_weight"); ok {
		e.weight = f
		e.hasWeight = true
	}
	if list, ok := m["items"].([]interface{}); ok {
		for _, it := range list {
			if im, ok := it.(map[string]interface{}); ok {
				e.items = append(e.items, im)
			}
		}
	}
	return e
}

// groupItemsAsBoxes synthesizes box entries from a flat item list when no
// explicit boxes structure exists, grouping on the item's box-identifying
// field. Items with no box field land in box "1".
func groupItemsAsBoxes(v interface{}) []boxEntry {
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}

	groups := map[string][]map[string]interface{}{}
	keys := []string{}
	for _, it := range list {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		key := stringAt(m, itemBoxAliases...)
		if key == "" {
			key = "1"
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], m)
	}
	sortKeysNumeric(keys)

	out := make([]boxEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, boxEntry{key: k, items: groups[k]})
	}
	return out
}

// parseBoxWeights flattens the box_weight field into an ordered numeric
// slice regardless of shape: JSON array, object keyed by box number, comma
// string or bare number. Unparseable positions become NaN so downstream
// priority checks can skip them without losing position.
func parseBoxWeights(v interface{}) []float64 {
	switch w := v.(type) {
	case nil:
		return nil

	case float64:
		return []float64{w}

	case []interface{}:
		out := make([]float64, len(w))
		for i, e := range w {
			if f, ok := asFloat(e); ok {
				out[i] = f
			} else {
				out[i] = math.NaN()
			}
		}
		return out

	case map[string]interface{}:
		keys := make([]string, 0, len(w))
		for k := range w {
			keys = append(keys, k)
		}
		sortKeysNumeric(keys)
		out := make([]float64, len(keys))
		for i, k := range keys {
			if f, ok := asFloat(w[k]); ok {
				out[i] = f
			} else {
				out[i] = math.NaN()
			}
		}
		return out

	case string:
		s := strings.TrimSpace(w)
		if s == "" {
			return nil
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			// Avoid re-entering the string case on a JSON-encoded string.
			if _, isStr := decoded.(string); !isStr {
				return parseBoxWeights(decoded)
			}
		}
		parts := strings.Split(s, ",")
		out := make([]float64, len(parts))
		for i, p := range parts {
			if f, ok := asFloat(p); ok {
				out[i] = f
			} else {
				out[i] = math.NaN()
			}
		}
		return out
	}
	return nil
}
