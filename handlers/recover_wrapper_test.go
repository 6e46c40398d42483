package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverWrapperConvertsPanic(t *testing.T) {
	h := RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		panic("bad payload")
	})

	req := httptest.NewRequest(http.MethodGet, "/cargo", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRecoverWrapperPassesThrough(t *testing.T) {
	h := RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/cargo", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
