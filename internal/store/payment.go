package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
)

type PaymentStore struct {
	db *sql.DB
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

const paymentCols = `id, reference, list_ids, amount, currency, status, receipt_number, created_at, updated_at`

func scanPayment(scanner interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	var listIDs string
	err := scanner.Scan(
		&p.ID, &p.Reference, &listIDs, &p.Amount, &p.Currency,
		&p.Status, &p.ReceiptNumber, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if listIDs != "" {
		p.ListIDs = strings.Split(listIDs, ",")
	}
	return &p, nil
}

func (s *PaymentStore) Create(reference string, listIDs []string, amount float64, currency, receiptNumber string) (*model.Payment, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO payments (reference, list_ids, amount, currency, status, receipt_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reference, strings.Join(listIDs, ","), amount, currency, model.PaymentStatusPending, receiptNumber, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return s.GetByReference(reference)
}

func (s *PaymentStore) GetByReference(reference string) (*model.Payment, error) {
	row := s.db.QueryRow(`SELECT `+paymentCols+` FROM payments WHERE reference = ?`, reference)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// UpdateStatus moves a payment to the given status. Unknown references
// are a no-op.
func (s *PaymentStore) UpdateStatus(reference, status string) error {
	_, err := s.db.Exec(
		`UPDATE payments SET status = ?, updated_at = ? WHERE reference = ?`,
		status, time.Now().UTC(), reference,
	)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// List returns all payments, newest first.
func (s *PaymentStore) List() ([]model.Payment, error) {
	rows, err := s.db.Query(`SELECT ` + paymentCols + ` FROM payments ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// HasSucceeded reports whether any payment has completed successfully.
func (s *PaymentStore) HasSucceeded() (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM payments WHERE status = ?`, model.PaymentStatusSucceeded).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count succeeded payments: %w", err)
	}
	return count > 0, nil
}
