package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"lrlcargo/invoice"
	"lrlcargo/models"
	"lrlcargo/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateInvoicePDF renders every printed copy of one invoice into a single
// PDF, keeping each copy whole on the page.
func GenerateInvoicePDF(repo *repository.InvoiceRepository, src invoice.PartySource, cargoID int64) ([]byte, error) {
	ctx := context.Background()

	// Fetch cargo
	cargo, err := repo.GetCargoForInvoice(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, nil
	}

	data := repo.AssembleInvoice(ctx, src, cargo)

	// Format booking date safely
	formattedDate := "-"
	if !cargo.CreatedAt.IsZero() {
		formattedDate = cargo.CreatedAt.Format("02-Jan-2006")
	}

	// Prepare contact numbers
	contacts := ""
	if data.Branch != nil {
		contacts = data.Branch.BranchContactNumber
		if data.Branch.BranchAlternativeNumber != "" {
			contacts += ", " + data.Branch.BranchAlternativeNumber
		}
	}

	// Copy titles
	copyTitles := []string{"Sender Copy", "Receiver Copy", "Office Copy"}

	// Load HTML template once
	tmpl, err := template.ParseFiles("templates/invoice_template.html")
	if err != nil {
		return nil, err
	}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		pdfData := models.InvoicePDFData{
			Branch:     data.Branch,
			Invoice:    data.Invoice,
			Sender:     data.Sender,
			Receiver:   data.Receiver,
			BoxRows:    data.BoxRows,
			Date:       formattedDate,
			Contacts:   contacts,
			TotalWords: AmountInWords(data.Invoice.NetTotal),
			CopyTitle:  title,
			ItemCount:  len(data.Invoice.Items),
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, pdfData); err != nil {
			return nil, err
		}

		// Wrap each copy in a div that avoids breaking across pages
		fullHTML.WriteString("<div class='invoice-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.invoice-copy {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body>` + fullHTML.String() + `</body></html>`

	// Create temp HTML file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "invoice_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	chromeCtx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(chromeCtx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
