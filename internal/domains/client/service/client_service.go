package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/client/model"
	"billpop-backend/internal/domains/client/repository"
	"billpop-backend/pkg/cache"
	"billpop-backend/pkg/logger"
)

const (
	clientListCacheKey = "clients:all"
	clientListCacheTTL = 60 * time.Second
)

// =====================================================
// CLIENT SERVICE IMPLEMENTATION
// =====================================================
type clientService struct {
	repo  repository.ClientRepository
	cache cache.Cache // nil when caching is disabled
}

func NewClientService(repo repository.ClientRepository, c cache.Cache) ClientService {
	return &clientService{
		repo:  repo,
		cache: c,
	}
}

// ListClients reads through the cache; cache failures degrade to the store.
func (s *clientService) ListClients(ctx context.Context) ([]model.Client, error) {
	if s.cache != nil {
		var cached []model.Client
		found, err := s.cache.Get(ctx, clientListCacheKey, &cached)
		if err != nil {
			logger.Warn("client list cache read failed", err)
		} else if found {
			return cached, nil
		}
	}

	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, clientListCacheKey, clients, clientListCacheTTL); err != nil {
			logger.Warn("client list cache write failed", err)
		}
	}

	return clients, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientService) CreateClient(ctx context.Context, req model.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, req model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.Update(ctx, req.ID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return client, nil
}

// DeleteClient removes the client only. Invoices that referenced it keep
// their stored name/email snapshot; no cascading fix-up happens here.
func (s *clientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

// EnsureDefaultClient implements the form-open provisioning rule: with zero
// clients in the store, create exactly one "Default Client" and return it.
// Repeated calls find a non-zero count and return the newest client instead,
// so re-renders can never create a second default.
func (s *clientService) EnsureDefaultClient(ctx context.Context) (*model.Client, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		clients, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return &clients[0], nil
	}

	email := model.DefaultClientEmail
	client := &model.Client{
		Name:  model.DefaultClientName,
		Email: &email,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return client, nil
}

func (s *clientService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, clientListCacheKey); err != nil {
		logger.Warn("client list cache invalidation failed", err)
	}
}
