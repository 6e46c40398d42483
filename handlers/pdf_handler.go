package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lrlcargo/invoice"
	"lrlcargo/repository"
	"lrlcargo/utils"
)

type PDFHandler struct {
	Repo     *repository.InvoiceRepository
	PartySrc invoice.PartySource
	SavePath string
}

// InvoicePDF handles the API request to generate and save an invoice PDF
func (h *PDFHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
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

	// Ensure save directory exists
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Generate PDF bytes
	pdfBytes, err := utils.GenerateInvoicePDF(h.Repo, h.PartySrc, cargoID)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "no cargo found", http.StatusNotFound)
		return
	}

	// Save PDF to file
	filename := fmt.Sprintf("invoice_%d_%d.pdf", cargoID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Push a copy to R2 when configured; the local file is still the answer
	fileRef := filename
	if url, err := utils.UploadInvoicePDF(pdfBytes, filename); err != nil {
		fmt.Printf("failed to upload invoice PDF %s to R2: %v\n", filename, err)
	} else {
		fileRef = url
	}

	// Record when and where the PDF was produced
	if err := h.Repo.CargoRepo.UpdatePDFInfo(r.Context(), cargoID, fileRef, time.Now()); err != nil {
		fmt.Printf("failed to update pdf info for cargo %d: %v\n", cargoID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"success":true,"file":"%s"}`, fileRef)))
}
