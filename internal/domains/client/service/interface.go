package service

import (
	"context"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/client/model"
)

// =====================================================
// CLIENT SERVICE INTERFACE
// =====================================================
type ClientService interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	CreateClient(ctx context.Context, req model.CreateClientRequest) (*model.Client, error)
	UpdateClient(ctx context.Context, req model.UpdateClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// EnsureDefaultClient provisions exactly one "Default Client" when the
	// store is empty, and otherwise returns the most recent existing client.
	// Safe to call on every render of the invoice form.
	EnsureDefaultClient(ctx context.Context) (*model.Client, error)
}
