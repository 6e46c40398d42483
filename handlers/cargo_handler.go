package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"lrlcargo/invoice"
	"lrlcargo/models"
	"lrlcargo/repository"
	"lrlcargo/utils"
)

type CargoHandler struct {
	Repo repository.CargoRepository
}

// CreateCargo handler. The booking payload is kept as received so the
// invoice view can normalize it later regardless of which client version
// sent it.
func (h *CargoHandler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var cargo models.Cargo
	if err := json.Unmarshal(raw, &cargo); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cargo.RawPayload = raw

	if err := h.Repo.CreateCargo(r.Context(), &cargo); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(cargo)
}

// GetAllCargo handler
func (h *CargoHandler) GetAllCargo(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for key, values := range q {
		// Only known cargo columns filter; anything else is ignored.
		if !repository.IsCargoFilter(key) {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			// Attempt to convert numeric values to int if possible
			if intVal, err := strconv.Atoi(values[0]); err == nil {
				filters[key] = intVal
			} else {
				filters[key] = values[0]
			}
		}
	}

	list, err := h.Repo.GetCargo(r.Context(), filters, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Cargo{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetCargoByID handler
func (h *CargoHandler) GetCargoByID(w http.ResponseWriter, r *http.Request, id string) {
	cargoID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid cargo ID", http.StatusBadRequest)
		return
	}

	filters := map[string]interface{}{"id": cargoID}
	list, err := h.Repo.GetCargo(r.Context(), filters, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		http.Error(w, "Cargo not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list[0])
}

// NextBookingNo handler returns the booking number a new booking would get.
// Display convenience only; CreateCargo recomputes it inside the insert.
func (h *CargoHandler) NextBookingNo(w http.ResponseWriter, r *http.Request) {
	last, err := h.Repo.LastBookingNo(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"next_booking_no": invoice.NextInvoiceNumber(last)},
	})
}

func (h *CargoHandler) DeleteCargo(w http.ResponseWriter, r *http.Request) {
	cargoIDStr := r.URL.Query().Get("id")
	if cargoIDStr == "" {
		http.Error(w, "missing cargo id", http.StatusBadRequest)
		return
	}

	cargoID, err := strconv.ParseInt(cargoIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid cargo id", http.StatusBadRequest)
		return
	}

	// Best-effort cleanup of an uploaded invoice PDF before the row goes.
	if list, err := h.Repo.GetCargo(r.Context(), map[string]interface{}{"id": cargoID}, true); err == nil && len(list) > 0 {
		if p := list[0].PdfPath; p != nil && strings.HasPrefix(*p, "http") {
			if err := utils.DeleteInvoicePDF(*p); err != nil {
				log.Printf("failed to delete invoice PDF for cargo %d: %v", cargoID, err)
			}
		}
	}

	if err := h.Repo.DeleteCargo(r.Context(), cargoID); err != nil {
		http.Error(w, "failed to delete cargo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Cargo deleted successfully"}`))
}
