package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lrlcargo/models"
	"lrlcargo/repository"
)

type BranchHandler struct {
	Repo repository.BranchRepository
}

func (h *BranchHandler) SaveBranch(w http.ResponseWriter, r *http.Request) {
	var branch models.Branch
	if err := json.NewDecoder(r.Body).Decode(&branch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if branch.BranchName == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "branch_name is required",
		})
		return
	}

	if err := h.Repo.SaveBranch(r.Context(), &branch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(branch)
}

func (h *BranchHandler) GetBranchByID(w http.ResponseWriter, r *http.Request, id string) {
	branchID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid branch ID", http.StatusBadRequest)
		return
	}

	branch, err := h.Repo.GetBranchByID(r.Context(), branchID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if branch == nil {
		http.Error(w, "Branch not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(branch)
}

func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListBranches(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Branch{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
