package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ViewPreferenceKey is the fixed settings key for the grid/list toggle.
const ViewPreferenceKey = "billing_view"

const (
	ViewGrid = "grid"
	ViewList = "list"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_log (
	id            TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	total         REAL NOT NULL,
	invoice_file  TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);
`

// Store is the terminal's local state: one user preference plus a log of
// submitted invoices for reprint listings. Losing this file loses nothing
// the server does not also hold.
type Store struct {
	db *sqlx.DB
}

func NewSQLiteStore(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ViewPreference() (string, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM settings WHERE key = $1`, ViewPreferenceKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ViewGrid, nil
		}
		return ViewGrid, err
	}
	return value, nil
}

func (s *Store) SetViewPreference(view string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, ViewPreferenceKey, view)
	return err
}

func (s *Store) LogInvoice(customerName string, total float64, invoiceFile string) error {
	rec := model.InvoiceRecord{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Total:        total,
		InvoiceFile:  invoiceFile,
		CreatedAt:    time.Now(),
	}
	_, err := s.db.NamedExec(`
		INSERT INTO invoice_log (id, customer_name, total, invoice_file, created_at)
		VALUES (:id, :customer_name, :total, :invoice_file, :created_at)
	`, rec)
	return err
}

func (s *Store) RecentInvoices(limit int) ([]model.InvoiceRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var records []model.InvoiceRecord
	err := s.db.Select(&records, `
		SELECT id, customer_name, total, invoice_file, created_at
		FROM invoice_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}
