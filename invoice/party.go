package invoice

import (
	"context"
	"strings"
	"sync"
)

// Party is the display-ready sender/receiver record for one invoice view.
// It is rebuilt on every view and never cached.
type Party struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	DocumentType string                 `json:"document_type"`
	DocumentID   string                 `json:"document_id"`
	Tel          string                 `json:"tel"`
	AddressLine  string                 `json:"address_line"`
	Post         string                 `json:"post"`
	Pin          string                 `json:"pin"`
	Dist         string                 `json:"dist"`
	State        string                 `json:"state"`
	Address      string                 `json:"address"`
	Phones       []string               `json:"phones"`
	Raw          map[string]interface{} `json:"-"`
}

type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
)

// PartySource is where the resolver looks parties up: the local repository
// in a normal deployment, the legacy directory client when configured, a
// fake in tests. Documents are raw maps because the upstream shapes vary.
type PartySource interface {
	PartyByID(ctx context.Context, id string) (map[string]interface{}, error)
	SearchParties(ctx context.Context, name string) ([]map[string]interface{}, error)
}

// customerType returns the expected customer-type filter for a role:
// senders are type 1, receivers type 2.
func (r Role) customerType() float64 {
	if r == RoleReceiver {
		return 2
	}
	return 1
}

func (r Role) idAliases() []string {
	if r == RoleReceiver {
		return receiverIDAliases
	}
	return senderIDAliases
}

// ResolveParty resolves one role through the three-tier fallback chain:
// direct ID lookup over the role's alias chain (sequential, first success
// wins), then a name search, then a party synthesized from whatever the
// invoice itself carries. Lookup failures are swallowed per candidate; the
// result degrades, it never errors.
func ResolveParty(ctx context.Context, src PartySource, inv *NormalizedInvoice, role Role) *Party {
	if inv == nil {
		return &Party{Phones: []string{}}
	}

	// Tier 1: direct ID lookup, declared order, first hit short-circuits.
	if src != nil {
		for _, alias := range role.idAliases() {
			if ctx.Err() != nil {
				break
			}
			id, ok := asString(inv.Raw[alias])
			if !ok {
				continue
			}
			doc, err := src.PartyByID(ctx, id)
			if err != nil || !hasID(doc) {
				continue
			}
			return partyFromDoc(doc)
		}
	}

	// Tier 2: fuzzy name search filtered to the role's customer type.
	name := roleName(inv, role)
	if src != nil && name != "" && ctx.Err() == nil {
		if results, err := src.SearchParties(ctx, name); err == nil {
			if p := pickSearchResult(results, name, role.customerType()); p != nil {
				return p
			}
		}
	}

	// Tier 3: synthesize from the invoice's own role fields. Structured
	// address parts stay empty so the view shows only the address line
	// instead of fabricated values.
	return synthesizeParty(inv, role, name)
}

// ResolveParties resolves sender and receiver concurrently; neither blocks
// the other and both are joined before return.
func ResolveParties(ctx context.Context, src PartySource, inv *NormalizedInvoice) (sender, receiver *Party) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sender = ResolveParty(ctx, src, inv, RoleSender)
	}()
	go func() {
		defer wg.Done()
		receiver = ResolveParty(ctx, src, inv, RoleReceiver)
	}()
	wg.Wait()
	return sender, receiver
}

func roleName(inv *NormalizedInvoice, role Role) string {
	if role == RoleReceiver {
		return inv.ReceiverName
	}
	return inv.SenderName
}

// pickSearchResult applies the search preference order: exact
// case-insensitive name match within the expected type, then a substring
// match within the type, then the first typed result, then the first result
// at all.
func pickSearchResult(results []map[string]interface{}, name string, wantType float64) *Party {
	if len(results) == 0 {
		return nil
	}
	lower := strings.ToLower(name)

	var typed []map[string]interface{}
	for _, doc := range results {
		if t, ok := firstFloat(doc, "customer_type", "type", "party_type"); ok && t == wantType {
			typed = append(typed, doc)
		}
	}

	for _, doc := range typed {
		if strings.EqualFold(stringAt(doc, partyNameAliases...), name) {
			return partyFromDoc(doc)
		}
	}
	for _, doc := range typed {
		if strings.Contains(strings.ToLower(stringAt(doc, partyNameAliases...)), lower) {
			return partyFromDoc(doc)
		}
	}
	if len(typed) > 0 {
		return partyFromDoc(typed[0])
	}
	return partyFromDoc(results[0])
}

var (
	partyNameAliases  = []string{"name", "party_name", "customer_name"}
	partyEmailAliases = []string{"email", "email_id"}
	partyDocTypeAlias = []string{"document_type", "doc_type", "id_type"}
	partyDocIDAliases = []string{"document_id", "doc_id", "civil_id", "id_number"}
	partyTelAliases   = []string{"tel", "phone", "mobile", "contact_number"}
	partyAddrAliases  = []string{"address_line", "address", "addr"}
	partyPostAliases  = []string{"post", "city", "post_office"}
	partyPinAliases   = []string{"pin", "pincode", "postal_code", "zip"}
	partyDistAliases  = []string{"dist", "district"}
	partyStateAliases = []string{"state", "province"}
)

func hasID(doc map[string]interface{}) bool {
	if doc == nil {
		return false
	}
	_, ok := asString(doc["id"])
	return ok
}

// partyFromDoc maps one raw party document into the display record.
func partyFromDoc(doc map[string]interface{}) *Party {
	p := &Party{
		ID:           stringAt(doc, "id", "party_id"),
		Name:         stringAt(doc, partyNameAliases...),
		Email:        stringAt(doc, partyEmailAliases...),
		DocumentType: stringAt(doc, partyDocTypeAlias...),
		DocumentID:   stringAt(doc, partyDocIDAliases...),
		Tel:          stringAt(doc, partyTelAliases...),
		AddressLine:  stringAt(doc, partyAddrAliases...),
		Post:         stringAt(doc, partyPostAliases...),
		Pin:          stringAt(doc, partyPinAliases...),
		Dist:         stringAt(doc, partyDistAliases...),
		State:        stringAt(doc, partyStateAliases...),
		Address:      stringAt(doc, "address", "full_address", "address_line"),
		Phones:       phonesFromDoc(doc),
		Raw:          doc,
	}
	return p
}

func phonesFromDoc(doc map[string]interface{}) []string {
	phones := []string{}
	if list, ok := doc["phones"].([]interface{}); ok {
		for _, v := range list {
			if s, ok := asString(v); ok {
				phones = append(phones, s)
			}
		}
	}
	if len(phones) == 0 {
		if s, ok := asString(doc["tel"]); ok {
			phones = append(phones, s)
		} else if s, ok := asString(doc["phone"]); ok {
			phones = append(phones, s)
		}
	}
	return phones
}

func synthesizeParty(inv *NormalizedInvoice, role Role, name string) *Party {
	p := &Party{
		Name:   name,
		Post:   "",
		Pin:    "",
		Dist:   "",
		State:  "",
		Phones: []string{},
	}
	if role == RoleReceiver {
		p.ID = inv.ReceiverID
		p.Email = inv.ReceiverEmail
		p.Tel = inv.ReceiverPhone
		p.AddressLine = inv.ReceiverAddress
		p.Address = inv.ReceiverAddress
		p.DocumentID = inv.ReceiverDocumentID
	} else {
		p.ID = inv.SenderID
		p.Email = inv.SenderEmail
		p.Tel = inv.SenderPhone
		p.AddressLine = inv.SenderAddress
		p.Address = inv.SenderAddress
		p.DocumentID = inv.SenderDocumentID
	}
	if p.Tel != "" {
		p.Phones = append(p.Phones, p.Tel)
	}
	return p
}
