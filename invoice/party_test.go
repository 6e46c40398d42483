package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	byID      map[string]map[string]interface{}
	idErr     map[string]error
	search    []map[string]interface{}
	searchErr error

	idCalls     []string
	searchCalls []string
}

func (f *fakeSource) PartyByID(_ context.Context, id string) (map[string]interface{}, error) {
	f.idCalls = append(f.idCalls, id)
	if err, ok := f.idErr[id]; ok {
		return nil, err
	}
	if doc, ok := f.byID[id]; ok {
		return doc, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeSource) SearchParties(_ context.Context, name string) ([]map[string]interface{}, error) {
	f.searchCalls = append(f.searchCalls, name)
	return f.search, f.searchErr
}

func TestResolvePartyIDTier(t *testing.T) {
	src := &fakeSource{
		byID: map[string]map[string]interface{}{
			"9": {"id": 9.0, "name": "Resolved Sender", "customer_type": 1.0},
		},
		idErr: map[string]error{"5": errors.New("boom")},
	}

	inv := Normalize(map[string]interface{}{
		"sender_id":   "5", // fails, swallowed
		"shipper_id":  "9", // first success wins
		"sender_name": "Fallback Name",
	})

	p := ResolveParty(context.Background(), src, inv, RoleSender)
	assert.Equal(t, "Resolved Sender", p.Name)
	assert.Equal(t, "9", p.ID)
	// Declared order, stopping at the first success.
	assert.Equal(t, []string{"5", "9"}, src.idCalls)
	assert.Empty(t, src.searchCalls)
}

func TestResolvePartyIDWithoutIDFieldSkipped(t *testing.T) {
	src := &fakeSource{
		byID: map[string]map[string]interface{}{
			"5": {"name": "no id field"},
			"9": {"id": 9.0, "name": "Good"},
		},
	}

	inv := Normalize(map[string]interface{}{
		"sender_id":  "5",
		"shipper_id": "9",
	})

	p := ResolveParty(context.Background(), src, inv, RoleSender)
	assert.Equal(t, "Good", p.Name)
}

func TestResolvePartyNameSearchPreference(t *testing.T) {
	tests := []struct {
		name    string
		results []map[string]interface{}
		query   string
		role    Role
		want    string
	}{
		{
			name: "Exact case-insensitive match within type",
			results: []map[string]interface{}{
				{"id": 1.0, "name": "Acme Traders", "customer_type": 1.0},
				{"id": 2.0, "name": "ACME", "customer_type": 2.0},
				{"id": 3.0, "name": "acme", "customer_type": 1.0},
			},
			query: "Acme",
			role:  RoleSender,
			want:  "acme",
		},
		{
			name: "Substring match within type",
			results: []map[string]interface{}{
				{"id": 1.0, "name": "Global Acme Traders", "customer_type": 1.0},
				{"id": 2.0, "name": "Acme", "customer_type": 2.0},
			},
			query: "acme",
			role:  RoleSender,
			want:  "Global Acme Traders",
		},
		{
			name: "First typed result",
			results: []map[string]interface{}{
				{"id": 1.0, "name": "Zed", "customer_type": 2.0},
				{"id": 2.0, "name": "Yan", "customer_type": 1.0},
			},
			query: "acme",
			role:  RoleSender,
			want:  "Yan",
		},
		{
			name: "First result when nothing typed",
			results: []map[string]interface{}{
				{"id": 1.0, "name": "Zed", "customer_type": 2.0},
			},
			query: "acme",
			role:  RoleSender,
			want:  "Zed",
		},
		{
			name: "Receiver filters to type 2",
			results: []map[string]interface{}{
				{"id": 1.0, "name": "acme", "customer_type": 1.0},
				{"id": 2.0, "name": "Acme", "customer_type": 2.0},
			},
			query: "acme",
			role:  RoleReceiver,
			want:  "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{search: tt.results}
			raw := map[string]interface{}{}
			if tt.role == RoleReceiver {
				raw["receiver_name"] = tt.query
			} else {
				raw["sender_name"] = tt.query
			}
			p := ResolveParty(context.Background(), src, Normalize(raw), tt.role)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestResolvePartySynthesizedFallback(t *testing.T) {
	src := &fakeSource{
		idErr:  map[string]error{"7": errors.New("404")},
		search: nil,
	}

	inv := Normalize(map[string]interface{}{
		"receiver_id":      "7",
		"receiver_name":    "Walk-in Customer",
		"receiver_address": "12 Harbour Rd",
		"receiver_phone":   "99887766",
	})

	p := ResolveParty(context.Background(), src, inv, RoleReceiver)
	require.NotNil(t, p)
	assert.Equal(t, "Walk-in Customer", p.Name)
	assert.Equal(t, "12 Harbour Rd", p.AddressLine)
	assert.Equal(t, []string{"99887766"}, p.Phones)
	// Structured address parts are explicitly empty, never fabricated.
	assert.Equal(t, "", p.Post)
	assert.Equal(t, "", p.Pin)
	assert.Equal(t, "", p.Dist)
	assert.Equal(t, "", p.State)
}

func TestResolvePartySearchErrorSwallowed(t *testing.T) {
	src := &fakeSource{searchErr: errors.New("directory down")}

	inv := Normalize(map[string]interface{}{"sender_name": "Acme"})
	p := ResolveParty(context.Background(), src, inv, RoleSender)
	assert.Equal(t, "Acme", p.Name)
}

func TestResolvePartyNilSource(t *testing.T) {
	inv := Normalize(map[string]interface{}{"sender_name": "Acme"})
	p := ResolveParty(context.Background(), nil, inv, RoleSender)
	assert.Equal(t, "Acme", p.Name)
}

func TestResolveParties(t *testing.T) {
	src := &fakeSource{
		byID: map[string]map[string]interface{}{
			"1": {"id": 1.0, "name": "Sender Co", "customer_type": 1.0},
			"2": {"id": 2.0, "name": "Receiver Co", "customer_type": 2.0},
		},
	}

	inv := Normalize(map[string]interface{}{
		"sender_id":   "1",
		"receiver_id": "2",
	})

	sender, receiver := ResolveParties(context.Background(), src, inv)
	assert.Equal(t, "Sender Co", sender.Name)
	assert.Equal(t, "Receiver Co", receiver.Name)
}

func TestResolvePartyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{
		byID: map[string]map[string]interface{}{"1": {"id": 1.0, "name": "Hit"}},
	}
	inv := Normalize(map[string]interface{}{"sender_id": "1", "sender_name": "Local"})

	p := ResolveParty(ctx, src, inv, RoleSender)
	// Cancelled before any lookup ran; degraded to the synthesized party.
	assert.Equal(t, "Local", p.Name)
	assert.Empty(t, src.idCalls)
}
