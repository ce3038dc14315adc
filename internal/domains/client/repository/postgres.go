package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"billpop-backend/internal/domains/client/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresClientRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &postgresClientRepository{
		pool: pool,
	}
}

func (r *postgresClientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `
		SELECT id, name, email, created_at
		FROM clients
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]model.Client, 0)
	for rows.Next() {
		var client model.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

func (r *postgresClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	query := `
		SELECT id, name, email, created_at
		FROM clients
		WHERE id = $1
	`

	var client model.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by id: %w", err)
	}

	return &client, nil
}

func (r *postgresClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.Email,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *postgresClientRepository) Update(ctx context.Context, id uuid.UUID, name, email *string) (*model.Client, error) {
	query := `
		UPDATE clients
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, name, email, created_at
	`

	var client model.Client
	err := r.pool.QueryRow(ctx, query, id, name, email).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &client, nil
}

func (r *postgresClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrClientNotFound
	}

	return nil
}

func (r *postgresClientRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM clients`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return count, nil
}
