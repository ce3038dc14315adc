package repository

import (
	"context"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/client/model"
)

// =====================================================
// CLIENT REPOSITORY INTERFACE
// =====================================================
type ClientRepository interface {
	// List returns all clients ordered by recency (newest first).
	List(ctx context.Context) ([]model.Client, error)

	// GetByID returns a single client or model.ErrClientNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)

	// Create inserts a client; the store assigns id and created_at.
	Create(ctx context.Context, client *model.Client) error

	// Update changes name/email; nil fields are left untouched.
	Update(ctx context.Context, id uuid.UUID, name, email *string) (*model.Client, error)

	// Delete removes a client by id.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of clients in the store.
	Count(ctx context.Context) (int, error)
}
