package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"billpop-backend/internal/domains/invoice/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresInvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &postgresInvoiceRepository{
		pool: pool,
	}
}

// =====================================================
// LIST INVOICES
// =====================================================

func (r *postgresInvoiceRepository) ListWithClientAndItems(ctx context.Context) ([]model.Invoice, error) {
	query := `
		SELECT
			i.id, i.client_id, i.client_name, i.client_email,
			i.date, i.due_date, i.status, i.total, i.created_at,
			c.id, c.name, c.email
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		ORDER BY i.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]model.Invoice, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var inv model.Invoice
		var clientID *uuid.UUID
		var clientName *string
		var clientEmail *string

		if err := rows.Scan(
			&inv.ID,
			&inv.ClientID,
			&inv.ClientName,
			&inv.ClientEmail,
			&inv.Date,
			&inv.DueDate,
			&inv.Status,
			&inv.Total,
			&inv.CreatedAt,
			&clientID,
			&clientName,
			&clientEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		if clientID != nil {
			inv.Client = &model.InvoiceClient{
				ID:    *clientID,
				Name:  *clientName,
				Email: clientEmail,
			}
		}

		inv.Items = make([]model.InvoiceItem, 0)
		index[inv.ID] = len(invoices)
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	if len(invoices) == 0 {
		return invoices, nil
	}

	items, err := r.listAllItems(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if i, ok := index[item.InvoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, item)
		}
	}

	return invoices, nil
}

func (r *postgresInvoiceRepository) listAllItems(ctx context.Context) ([]model.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, rate, amount, position
		FROM invoice_items
		ORDER BY invoice_id, position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	items := make([]model.InvoiceItem, 0)
	for rows.Next() {
		var item model.InvoiceItem
		if err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.Description,
			&item.Quantity,
			&item.Rate,
			&item.Amount,
			&item.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}

	return items, nil
}

// =====================================================
// GET INVOICE
// =====================================================

func (r *postgresInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	query := `
		SELECT id, client_id, client_name, client_email,
		       date, due_date, status, total, created_at
		FROM invoices
		WHERE id = $1
	`

	var inv model.Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.ClientID,
		&inv.ClientName,
		&inv.ClientEmail,
		&inv.Date,
		&inv.DueDate,
		&inv.Status,
		&inv.Total,
		&inv.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by id: %w", err)
	}

	items, err := r.getItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items

	return &inv, nil
}

func (r *postgresInvoiceRepository) getItemsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, rate, amount, position
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()

	items := make([]model.InvoiceItem, 0)
	for rows.Next() {
		var item model.InvoiceItem
		if err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.Description,
			&item.Quantity,
			&item.Rate,
			&item.Amount,
			&item.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}

	return items, nil
}

// =====================================================
// CREATE INVOICE
// =====================================================

func (r *postgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, client_id, client_name, client_email,
			date, due_date, status, total
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		invoice.ID,
		invoice.ClientID,
		invoice.ClientName,
		invoice.ClientEmail,
		invoice.Date,
		invoice.DueDate,
		invoice.Status,
		invoice.Total,
	).Scan(&invoice.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// CreateInvoiceItems inserts the item rows as one batch. This call is
// not wrapped in a transaction with CreateInvoice; a failure here
// leaves the header row persisted without items.
func (r *postgresInvoiceRepository) CreateInvoiceItems(ctx context.Context, items []model.InvoiceItem) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO invoice_items (
			id, invoice_id, description, quantity, rate, amount, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range items {
		batch.Queue(query,
			item.ID,
			item.InvoiceID,
			item.Description,
			item.Quantity,
			item.Rate,
			item.Amount,
			item.Position,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create invoice item %d: %w", i, err)
		}
	}

	return nil
}
