package models

import "lrlcargo/invoice"

// InvoicePDFData feeds the invoice HTML template for one printed copy.
type InvoicePDFData struct {
	Branch     *Branch
	Invoice    *invoice.NormalizedInvoice
	Sender     *invoice.Party
	Receiver   *invoice.Party
	BoxRows    []invoice.BoxRow
	Date       string // formatted booking date
	Contacts   string // formatted branch contact numbers
	TotalWords string
	CopyTitle  string
	ItemCount  int
}
