package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrlcargo/models"
)

type stubCargoRepo struct {
	last       string
	lastErr    error
	created    *models.Cargo
	cargos     []*models.Cargo
	gotFilters map[string]interface{}
}

func (s *stubCargoRepo) CreateCargo(_ context.Context, cargo *models.Cargo) error {
	cargo.ID = 42
	cargo.BookingNo = "INV-000042"
	s.created = cargo
	return nil
}

func (s *stubCargoRepo) GetCargo(_ context.Context, filters map[string]interface{}, single bool) ([]*models.Cargo, error) {
	s.gotFilters = filters
	if id, ok := filters["id"]; ok {
		for _, c := range s.cargos {
			if c.ID == id.(int64) {
				return []*models.Cargo{c}, nil
			}
		}
		return nil, nil
	}
	return s.cargos, nil
}

func (s *stubCargoRepo) LastBookingNo(_ context.Context) (string, error) {
	return s.last, s.lastErr
}

func (s *stubCargoRepo) UpdatePDFInfo(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}

func (s *stubCargoRepo) DeleteCargo(_ context.Context, _ int64) error { return nil }

func TestNextBookingNo(t *testing.T) {
	h := &CargoHandler{Repo: &stubCargoRepo{last: "INV-000041"}}

	req := httptest.NewRequest(http.MethodGet, "/cargo/next-no", nil)
	rec := httptest.NewRecorder()
	h.NextBookingNo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INV-000042", data["next_booking_no"])
}

func TestNextBookingNoEmptyTable(t *testing.T) {
	h := &CargoHandler{Repo: &stubCargoRepo{last: ""}}

	req := httptest.NewRequest(http.MethodGet, "/cargo/next-no", nil)
	rec := httptest.NewRecorder()
	h.NextBookingNo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "INV-000001", data["next_booking_no"])
}

func TestNextBookingNoRepoError(t *testing.T) {
	h := &CargoHandler{Repo: &stubCargoRepo{lastErr: errors.New("db down")}}

	req := httptest.NewRequest(http.MethodGet, "/cargo/next-no", nil)
	rec := httptest.NewRecorder()
	h.NextBookingNo(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateCargoKeepsRawPayload(t *testing.T) {
	repo := &stubCargoRepo{}
	h := &CargoHandler{Repo: repo}

	body := `{"created_by":7,"sender_name":"Noor Traders","boxes":{"1":{"weight":5}},"custom_field":"kept"}`
	req := httptest.NewRequest(http.MethodPost, "/cargo", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateCargo(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)

	// The payload is stored verbatim, unknown fields included.
	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(repo.created.RawPayload, &stored))
	assert.Equal(t, "kept", stored["custom_field"])
	assert.Equal(t, "Noor Traders", stored["sender_name"])
}

func TestGetAllCargoDropsUnknownQueryParams(t *testing.T) {
	repo := &stubCargoRepo{}
	h := &CargoHandler{Repo: repo}

	req := httptest.NewRequest(http.MethodGet,
		"/cargo?status=draft&branch_id=5&order=id;DROP%20TABLE%20cargo&page=2", nil)
	rec := httptest.NewRecorder()
	h.GetAllCargo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Only known cargo columns reach the repository as filters.
	assert.Equal(t, map[string]interface{}{
		"status":    "draft",
		"branch_id": 5,
	}, repo.gotFilters)
}

func TestGetCargoByIDNotFound(t *testing.T) {
	h := &CargoHandler{Repo: &stubCargoRepo{}}

	req := httptest.NewRequest(http.MethodGet, "/cargo/99", nil)
	rec := httptest.NewRecorder()
	h.GetCargoByID(rec, req, "99")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
