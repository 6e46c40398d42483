package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lrlcargo/models"
	"lrlcargo/repository"
)

type PartyHandler struct {
	Repo repository.PartyRepository
}

// SaveParty handler creates or updates a sender/receiver record.
func (h *PartyHandler) SaveParty(w http.ResponseWriter, r *http.Request) {
	var party models.Party
	if err := json.NewDecoder(r.Body).Decode(&party); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if party.Name == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Party name is required",
		})
		return
	}
	if party.CustomerType != models.PartyTypeSender && party.CustomerType != models.PartyTypeReceiver {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "customer_type must be 1 (sender) or 2 (receiver)",
		})
		return
	}

	if err := h.Repo.UpsertParty(r.Context(), &party); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(party)
}

// GetPartyByID handler
func (h *PartyHandler) GetPartyByID(w http.ResponseWriter, r *http.Request, id string) {
	partyID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid party ID", http.StatusBadRequest)
		return
	}

	party, err := h.Repo.GetPartyByID(r.Context(), partyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if party == nil {
		http.Error(w, "Party not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(party)
}

// SearchParties handler
func (h *PartyHandler) SearchParties(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("search")
	if name == "" {
		http.Error(w, "missing search term", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.SearchPartiesByName(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Party{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *PartyHandler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "missing party id", http.StatusBadRequest)
		return
	}

	partyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid party id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteParty(r.Context(), partyID); err != nil {
		http.Error(w, "failed to delete party: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Party deleted successfully"}`))
}
