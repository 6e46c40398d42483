// Package invoice turns the variably-shaped booking payloads kept on a cargo
// record into a canonical invoice view: a fully-defaulted record, a
// reconciled box/weight table and resolved sender/receiver parties.
package invoice

import (
	"sort"
	"strconv"
	"strings"
)

// Item is one invoice line. Lines come either from a flat items array on the
// payload or from flattening a per-box structure.
type Item struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Weight      float64 `json:"weight"`
	BoxNumber   string  `json:"box_number"`
}

// NormalizedInvoice is the canonical record. Every field is always populated
// (zero values, never absent), so consumers never re-check payload aliases.
type NormalizedInvoice struct {
	ID            string  `json:"id"`
	BookingNo     string  `json:"booking_no"`
	TrackCode     string  `json:"track_code"`
	TotalCost     float64 `json:"total_cost"`
	BillCharges   float64 `json:"bill_charges"`
	VatCost       float64 `json:"vat_cost"`
	NoOfPieces    int     `json:"no_of_pieces"`
	NetTotal      float64 `json:"net_total"`
	TotalWeight   float64 `json:"total_weight"`
	PaymentMethod string  `json:"payment_method"`
	DeliveryType  string  `json:"delivery_type"`
	Branch        string  `json:"branch"`

	SenderID         string `json:"sender_id"`
	SenderName       string `json:"sender_name"`
	SenderAddress    string `json:"sender_address"`
	SenderPhone      string `json:"sender_phone"`
	SenderEmail      string `json:"sender_email"`
	SenderDocumentID string `json:"sender_document_id"`

	ReceiverID         string `json:"receiver_id"`
	ReceiverName       string `json:"receiver_name"`
	ReceiverAddress    string `json:"receiver_address"`
	ReceiverPhone      string `json:"receiver_phone"`
	ReceiverEmail      string `json:"receiver_email"`
	ReceiverDocumentID string `json:"receiver_document_id"`

	Items []Item `json:"items"`

	// Raw keeps the unwrapped payload for the box reconciler and the party
	// resolver, which consult aliases the fixed fields above do not carry.
	Raw map[string]interface{} `json:"-"`
}

// Alias chains. The order is part of the contract: the first key holding a
// non-empty value wins.
var (
	bookingNoAliases   = []string{"booking_no", "invoice_no", "bookingNo", "booking_number", "invoice_number"}
	trackCodeAliases   = []string{"track_code", "lrl_tracking_code", "tracking_code"}
	totalCostAliases   = []string{"total_cost", "total"}
	billChargesAliases = []string{"bill_charges", "bill_charge", "charges"}
	vatCostAliases     = []string{"vat_cost", "vat", "tax"}
	netTotalAliases    = []string{"net_total", "total_cost", "total"}
	totalWeightAliases = []string{"total_weight", "weight", "gross_weight"}
	payMethodAliases   = []string{"payment_method", "payment_mode", "pay_method"}
	deliveryAliases    = []string{"delivery_type", "delivery_mode"}
	branchAliases      = []string{"branch", "branch_name"}

	senderIDAliases    = []string{"sender_id", "shipper_id", "sender_party_id", "shipper_party_id"}
	senderNameAliases  = []string{"sender_name", "shipper_name", "sender", "shipper"}
	senderAddrAliases  = []string{"sender_address", "shipper_address", "sender_addr"}
	senderPhoneAliases = []string{"sender_phone", "shipper_phone", "sender_mobile", "sender_contact"}
	senderEmailAliases = []string{"sender_email", "shipper_email"}
	senderDocAliases   = []string{"sender_document_id", "sender_civil_id", "shipper_document_id"}

	receiverIDAliases    = []string{"receiver_id", "consignee_id", "receiver_party_id", "consignee_party_id"}
	receiverNameAliases  = []string{"receiver_name", "consignee_name", "receiver", "consignee"}
	receiverAddrAliases  = []string{"receiver_address", "consignee_address", "receiver_addr"}
	receiverPhoneAliases = []string{"receiver_phone", "consignee_phone", "receiver_mobile", "receiver_contact"}
	receiverEmailAliases = []string{"receiver_email", "consignee_email"}
	receiverDocAliases   = []string{"receiver_document_id", "receiver_civil_id", "consignee_document_id"}

	itemDescAliases  = []string{"description", "item_name", "name", "particulars"}
	itemQtyAliases   = []string{"qty", "quantity", "pieces", "count"}
	itemPriceAliases = []string{"unit_price", "price", "rate"}
	itemTotalAliases = []string{"total_price", "amount", "line_total"}
	itemWtAliases    = []string{"weight", "item_weight", "wt"}
	itemBoxAliases   = []string{"box_number", "box_no", "box", "package_no"}
)

// Normalize maps an arbitrarily-shaped booking payload (optionally wrapped
// one level under "cargo") into a NormalizedInvoice. It is pure, never
// panics and never mutates its input; missing or malformed fields degrade to
// zero values.
func Normalize(raw map[string]interface{}) *NormalizedInvoice {
	cargo := unwrapCargo(raw)

	inv := &NormalizedInvoice{
		ID:            stringAt(cargo, "id", "cargo_id", "_id"),
		BookingNo:     stringAt(cargo, bookingNoAliases...),
		TrackCode:     stringAt(cargo, trackCodeAliases...),
		TotalCost:     floatAt(cargo, totalCostAliases...),
		BillCharges:   floatAt(cargo, billChargesAliases...),
		VatCost:       floatAt(cargo, vatCostAliases...),
		NetTotal:      floatAt(cargo, netTotalAliases...),
		TotalWeight:   floatAt(cargo, totalWeightAliases...),
		PaymentMethod: stringAt(cargo, payMethodAliases...),
		DeliveryType:  stringAt(cargo, deliveryAliases...),
		Branch:        stringAt(cargo, branchAliases...),

		SenderID:         stringAt(cargo, senderIDAliases...),
		SenderName:       stringAt(cargo, senderNameAliases...),
		SenderAddress:    stringAt(cargo, senderAddrAliases...),
		SenderPhone:      stringAt(cargo, senderPhoneAliases...),
		SenderEmail:      stringAt(cargo, senderEmailAliases...),
		SenderDocumentID: stringAt(cargo, senderDocAliases...),

		ReceiverID:         stringAt(cargo, receiverIDAliases...),
		ReceiverName:       stringAt(cargo, receiverNameAliases...),
		ReceiverAddress:    stringAt(cargo, receiverAddrAliases...),
		ReceiverPhone:      stringAt(cargo, receiverPhoneAliases...),
		ReceiverEmail:      stringAt(cargo, receiverEmailAliases...),
		ReceiverDocumentID: stringAt(cargo, receiverDocAliases...),

		Items: normalizeItems(cargo),
		Raw:   cargo,
	}

	inv.NoOfPieces = noOfPieces(raw, cargo)

	return inv
}

// unwrapCargo peels an optional {cargo:{...}} envelope. Creation responses
// wrap the record, list/detail responses do not.
func unwrapCargo(raw map[string]interface{}) map[string]interface{} {
	if raw == nil {
		return map[string]interface{}{}
	}
	if inner, ok := raw["cargo"].(map[string]interface{}); ok && inner != nil {
		return inner
	}
	return raw
}

// normalizeItems derives the flat item list: a flat items array passes
// through as-is, a boxes map flattens in ascending numeric key order, a
// boxes array flattens in array order.
func normalizeItems(cargo map[string]interface{}) []Item {
	if list, ok := cargo["items"].([]interface{}); ok {
		out := make([]Item, 0, len(list))
		for _, v := range list {
			if m, ok := v.(map[string]interface{}); ok {
				out = append(out, itemFromMap(m, ""))
			}
		}
		return out
	}

	out := []Item{}
	for _, box := range parseBoxes(cargo["boxes"]) {
		for _, m := range box.items {
			out = append(out, itemFromMap(m, box.key))
		}
	}
	return out
}

// itemFromMap builds one Item. total_price is recomputed as qty × unit_price
// whenever both are numeric; the upstream value is only trusted when one of
// the factors is missing.
func itemFromMap(m map[string]interface{}, boxKey string) Item {
	it := Item{
		Description: stringAt(m, itemDescAliases...),
		Qty:         floatAt(m, itemQtyAliases...),
		UnitPrice:   floatAt(m, itemPriceAliases...),
		Weight:      floatAt(m, itemWtAliases...),
		BoxNumber:   stringAt(m, itemBoxAliases...),
	}
	if it.BoxNumber == "" {
		it.BoxNumber = boxKey
	}

	qty, qtyOK := firstFloat(m, itemQtyAliases...)
	price, priceOK := firstFloat(m, itemPriceAliases...)
	if qtyOK && priceOK {
		it.TotalPrice = qty * price
	} else {
		it.TotalPrice = floatAt(m, itemTotalAliases...)
	}
	return it
}

// noOfPieces prefers an explicit count, root level over nested (creation
// responses sometimes only populate the nested path), then falls back to the
// number of boxes.
func noOfPieces(raw, cargo map[string]interface{}) int {
	if raw != nil {
		if n, ok := firstFloat(raw, "no_of_pieces"); ok {
			return int(n)
		}
	}
	if n, ok := firstFloat(cargo, "no_of_pieces"); ok {
		return int(n)
	}
	if boxes := parseBoxes(cargo["boxes"]); len(boxes) > 0 {
		return len(boxes)
	}
	return 0
}

// ------------------------ Value extraction ------------------------

// stringAt walks an alias chain and returns the first non-empty value,
// coercing numbers to their decimal form. Returns "" when nothing matches.
func stringAt(m map[string]interface{}, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, k := range keys {
		if s, ok := asString(m[k]); ok {
			return s
		}
	}
	return ""
}

// floatAt walks an alias chain and returns the first numeric value, or 0.
func floatAt(m map[string]interface{}, keys ...string) float64 {
	f, _ := firstFloat(m, keys...)
	return f
}

func firstFloat(m map[string]interface{}, keys ...string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	for _, k := range keys {
		if f, ok := asFloat(m[k]); ok {
			return f, true
		}
	}
	return 0, false
}

func asString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	}
	return "", false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// sortKeysNumeric orders box keys ascending by numeric value, falling back
// to a plain string sort for keys that do not parse.
func sortKeysNumeric(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}
