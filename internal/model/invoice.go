package model

import "time"

// InvoiceRequest is the POST /api/invoice body. Items carry the cart lines
// verbatim, internal bookkeeping fields included.
type InvoiceRequest struct {
	CustomerName   string     `json:"customer_name"`
	CustomerMobile string     `json:"customer_mobile"`
	Items          []CartLine `json:"items"`
}

type InvoiceResponse struct {
	Success     bool    `json:"success"`
	InvoiceFile string  `json:"invoice_file"`
	Total       float64 `json:"total"`
	Message     string  `json:"message"`
}

// InvoiceRecord is a locally logged submission, kept for reprint listings.
type InvoiceRecord struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	Total        float64   `db:"total"`
	InvoiceFile  string    `db:"invoice_file"`
	CreatedAt    time.Time `db:"created_at"`
}
