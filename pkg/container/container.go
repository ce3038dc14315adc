package container

import (
	"context"
	"fmt"
	"time"

	"billpop-backend/internal/config"
	clienthandler "billpop-backend/internal/domains/client/handler"
	clientrepo "billpop-backend/internal/domains/client/repository"
	clientservice "billpop-backend/internal/domains/client/service"
	invoicehandler "billpop-backend/internal/domains/invoice/handler"
	invoicerepo "billpop-backend/internal/domains/invoice/repository"
	invoiceservice "billpop-backend/internal/domains/invoice/service"
	infracache "billpop-backend/internal/infrastructure/cache"
	"billpop-backend/internal/infrastructure/database"
	"billpop-backend/internal/infrastructure/storage"
	"billpop-backend/pkg/cache"
	"billpop-backend/pkg/logger"
)

// =====================================================
// DEPENDENCY INJECTION CONTAINER
// =====================================================
// Wires the whole application in dependency order. Redis and MinIO are
// optional: the app runs with the list cache and PDF archive disabled
// when they are not configured.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB        *database.PostgresDB
	Cache     *infracache.RedisClient
	Artifacts *storage.ArtifactStore

	// Repositories
	ClientRepo  clientrepo.ClientRepository
	InvoiceRepo invoicerepo.InvoiceRepository

	// Services
	ClientService  clientservice.ClientService
	InvoiceService invoiceservice.InvoiceService

	// Handlers
	ClientHandler  *clienthandler.ClientHandler
	InvoiceHandler *invoicehandler.InvoiceHandler
}

// NewContainer initializes all dependencies.
func NewContainer() (*Container, error) {
	c := &Container{}

	if err := c.initConfig(); err != nil {
		return nil, err
	}
	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("✅ Container initialized successfully", nil)
	return c, nil
}

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("✅ Configuration loaded", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Environment,
	})
	return nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	logger.Info("✅ Database connected", map[string]interface{}{
		"host": dbConfig.Host,
		"db":   dbConfig.DBName,
	})
	return nil
}

// initCache connects Redis when enabled. A failed connection only
// disables the client list cache; it never blocks startup.
func (c *Container) initCache() {
	if !c.Config.Redis.Enabled {
		logger.Info("ℹ️ Redis disabled, client list cache off", nil)
		return
	}

	client := infracache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		logger.Warn("⚠️ Redis unavailable, client list cache off", err)
		return
	}

	c.Cache = client
	logger.Info("✅ Redis connected", map[string]interface{}{
		"host": c.Config.Redis.Host,
	})
}

func (c *Container) initStorage() error {
	if c.Config.Storage.Endpoint == "" {
		logger.Info("ℹ️ MinIO not configured, PDF archiving off", nil)
		return nil
	}

	store, err := storage.NewArtifactStore(c.Config.Storage)
	if err != nil {
		return fmt.Errorf("failed to init artifact store: %w", err)
	}

	c.Artifacts = store
	logger.Info("✅ MinIO connected", map[string]interface{}{
		"endpoint": c.Config.Storage.Endpoint,
		"bucket":   c.Config.Storage.Bucket,
	})
	return nil
}

func (c *Container) initRepositories() {
	c.ClientRepo = clientrepo.NewPostgresClientRepository(c.DB.Pool)
	c.InvoiceRepo = invoicerepo.NewPostgresInvoiceRepository(c.DB.Pool)
	logger.Info("✅ Repositories initialized", nil)
}

func (c *Container) initServices() {
	var listCache cache.Cache
	if c.Cache != nil {
		listCache = c.Cache
	}

	c.ClientService = clientservice.NewClientService(c.ClientRepo, listCache)
	c.InvoiceService = invoiceservice.NewInvoiceService(c.InvoiceRepo, c.ClientService, c.Artifacts)
	logger.Info("✅ Services initialized", nil)
}

func (c *Container) initHandlers() {
	c.ClientHandler = clienthandler.NewClientHandler(c.ClientService)
	c.InvoiceHandler = invoicehandler.NewInvoiceHandler(c.InvoiceService)
	logger.Info("✅ Handlers initialized", nil)
}

// Cleanup releases all held resources.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("✅ Container cleaned up", nil)
}
