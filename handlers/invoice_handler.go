package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lrlcargo/invoice"
	"lrlcargo/models"
	"lrlcargo/repository"
)

type InvoiceHandler struct {
	Repo     *repository.InvoiceRepository
	PartySrc invoice.PartySource
}

// InvoiceView is the invoice endpoint's response: the canonical record plus
// the derived box table and the resolved parties.
type InvoiceView struct {
	Invoice  *invoice.NormalizedInvoice `json:"invoice"`
	BoxRows  []invoice.BoxRow           `json:"box_rows"`
	Sender   *invoice.Party             `json:"sender"`
	Receiver *invoice.Party             `json:"receiver"`
	Branch   *models.Branch             `json:"branch,omitempty"`
}

// GetInvoice handles GET /invoice?id=. The cargo fetch is the one hard
// failure here; party and branch resolution degrade silently so a partially
// resolved invoice still renders.
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "missing cargo id", http.StatusBadRequest)
		return
	}
	cargoID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid cargo id", http.StatusBadRequest)
		return
	}

	cargo, err := h.Repo.GetCargoForInvoice(r.Context(), cargoID)
	if err != nil {
		http.Error(w, "failed to load cargo: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if cargo == nil {
		http.Error(w, "Cargo not found", http.StatusNotFound)
		return
	}

	data := h.Repo.AssembleInvoice(r.Context(), h.PartySrc, cargo)
	view := &InvoiceView{
		Invoice:  data.Invoice,
		BoxRows:  data.BoxRows,
		Sender:   data.Sender,
		Receiver: data.Receiver,
		Branch:   data.Branch,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
