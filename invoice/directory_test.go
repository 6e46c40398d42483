package invoice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryServer(t *testing.T, byIDBody, searchBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("search") != "" {
			w.Write([]byte(searchBody))
			return
		}
		w.Write([]byte(byIDBody))
	}))
}

func TestDirectoryPartyByIDShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Wrapped under party", body: `{"party": {"id": 3, "name": "Acme"}}`},
		{name: "Wrapped under data", body: `{"data": {"id": 3, "name": "Acme"}}`},
		{name: "Bare object", body: `{"id": 3, "name": "Acme"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := directoryServer(t, tt.body, `[]`)
			defer srv.Close()

			c := NewDirectoryClient(srv.URL)
			doc, err := c.PartyByID(context.Background(), "3")
			require.NoError(t, err)
			assert.Equal(t, "Acme", stringAt(doc, "name"))
		})
	}
}

func TestDirectoryPartyByIDNoID(t *testing.T) {
	srv := directoryServer(t, `{"name": "Acme"}`, `[]`)
	defer srv.Close()

	c := NewDirectoryClient(srv.URL)
	_, err := c.PartyByID(context.Background(), "3")
	assert.Error(t, err)
}

func TestDirectoryPartyByIDHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewDirectoryClient(srv.URL)
	_, err := c.PartyByID(context.Background(), "3")
	assert.Error(t, err)
}

func TestDirectorySearchShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "Raw array", body: `[{"id": 1}, {"id": 2}]`, want: 2},
		{name: "Under data", body: `{"data": [{"id": 1}]}`, want: 1},
		{name: "Under parties", body: `{"parties": [{"id": 1}, {"id": 2}, {"id": 3}]}`, want: 3},
		{name: "Under data.parties", body: `{"data": {"parties": [{"id": 1}]}}`, want: 1},
		{name: "Unrecognized shape", body: `{"weird": true}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := directoryServer(t, `{}`, tt.body)
			defer srv.Close()

			c := NewDirectoryClient(srv.URL)
			list, err := c.SearchParties(context.Background(), "acme")
			require.NoError(t, err)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestDirectoryAsPartySource(t *testing.T) {
	srv := directoryServer(t,
		`{"party": {"id": 8, "name": "Harbour Freight", "customer_type": 1}}`,
		`[]`,
	)
	defer srv.Close()

	var src PartySource = NewDirectoryClient(srv.URL)
	inv := Normalize(map[string]interface{}{"sender_id": 8})

	p := ResolveParty(context.Background(), src, inv, RoleSender)
	assert.Equal(t, "Harbour Freight", p.Name)
	assert.Equal(t, "8", p.ID)
}
