package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DirectoryClient is a PartySource over the legacy party directory's HTTP
// API. Different directory versions wrap their responses differently, so
// both calls unwrap before returning.
type DirectoryClient struct {
	BaseURL string
	Client  *http.Client
}

func NewDirectoryClient(baseURL string) *DirectoryClient {
	return &DirectoryClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PartyByID fetches one party. Accepted response shapes: {party:{...}},
// {data:{...}} or the bare object. A payload without an id is not a hit.
func (c *DirectoryClient) PartyByID(ctx context.Context, id string) (map[string]interface{}, error) {
	var payload interface{}
	if err := c.getJSON(ctx, c.BaseURL+"/parties/"+url.PathEscape(id), &payload); err != nil {
		return nil, err
	}
	doc := unwrapPartyDoc(payload)
	if !hasID(doc) {
		return nil, fmt.Errorf("party %s: no id in response", id)
	}
	return doc, nil
}

// SearchParties searches by name. Accepted response shapes: a raw array,
// {data:[...]}, {parties:[...]} or {data:{parties:[...]}}.
func (c *DirectoryClient) SearchParties(ctx context.Context, name string) ([]map[string]interface{}, error) {
	u := c.BaseURL + "/parties?search=" + url.QueryEscape(name)
	var payload interface{}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return unwrapPartyList(payload), nil
}

func (c *DirectoryClient) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory: %s returned %d", u, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func unwrapPartyDoc(payload interface{}) map[string]interface{} {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return nil
	}
	if inner, ok := m["party"].(map[string]interface{}); ok {
		return inner
	}
	if inner, ok := m["data"].(map[string]interface{}); ok {
		return inner
	}
	return m
}

func unwrapPartyList(payload interface{}) []map[string]interface{} {
	switch v := payload.(type) {
	case []interface{}:
		return docList(v)
	case map[string]interface{}:
		if list, ok := v["parties"].([]interface{}); ok {
			return docList(list)
		}
		switch data := v["data"].(type) {
		case []interface{}:
			return docList(data)
		case map[string]interface{}:
			if list, ok := data["parties"].([]interface{}); ok {
				return docList(list)
			}
		}
	}
	return nil
}

func docList(list []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
