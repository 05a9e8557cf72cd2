// Package container is the composition root. It owns exactly one
// instance per process-wide capability, guards construction with
// sync.Once so concurrent first use cannot initialize anything twice,
// and exposes Connect/Close for the resource lifecycle.
package container

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/option"

	"pixcharge/internal/config"
	"pixcharge/internal/repositories"
	"pixcharge/internal/secrets"
	"pixcharge/internal/services/charge"
	"pixcharge/internal/services/identity"
	"pixcharge/internal/services/objectstore"
	"pixcharge/internal/services/pix"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container wires the object graph in dependency order: clients first,
// then adapters, then the use case. Pass it explicitly; nothing reads it
// from a global.
type Container struct {
	cfg config.Config
	log *logrus.Logger

	mongoOnce sync.Once
	mongoCli  *mongo.Client
	mongoErr  error

	cacheOnce sync.Once
	cache     repositories.CacheRepository

	identityOnce sync.Once
	identitySvc  *identity.Service
	identityErr  error

	secretsOnce sync.Once
	secretStore *secrets.Store
	secretsErr  error

	pixOnce sync.Once
	pixSvc  *pix.Service
	pixErr  error

	storageOnce sync.Once
	storageCli  *storage.Client
	storageErr  error

	chargeOnce sync.Once
	chargeSvc  charge.Service
	chargeErr  error
}

func New(cfg config.Config, log *logrus.Logger) *Container {
	return &Container{cfg: cfg, log: log}
}

// Mongo returns the shared document-database client.
func (c *Container) Mongo(ctx context.Context) (*mongo.Client, error) {
	c.mongoOnce.Do(func() {
		c.mongoCli, c.mongoErr = repositories.NewMongoClient(ctx, c.cfg.MongoURI, c.cfg.ServiceName)
	})
	return c.mongoCli, c.mongoErr
}

// Cache returns the shared admin-config cache. Construction cannot fail;
// connectivity is probed in Connect and degrades to a warning because a
// cold cache only costs extra database reads.
func (c *Container) Cache() repositories.CacheRepository {
	c.cacheOnce.Do(func() {
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.cache = repositories.NewRedisCacheRepository(client)
	})
	return c.cache
}

// Identity returns the shared authentication gateway.
func (c *Container) Identity(ctx context.Context) (*identity.Service, error) {
	c.identityOnce.Do(func() {
		c.identitySvc, c.identityErr = identity.NewService(ctx, c.cfg.ProjectID, c.cfg.CredentialsFile, c.log)
	})
	return c.identitySvc, c.identityErr
}

// Secrets returns the shared secret store.
func (c *Container) Secrets(ctx context.Context) (*secrets.Store, error) {
	c.secretsOnce.Do(func() {
		c.secretStore, c.secretsErr = secrets.NewStore(ctx, c.cfg.CredentialsFile)
	})
	return c.secretStore, c.secretsErr
}

// Pix returns the shared PSP provider. The provider is constructed here
// and connected (certificate fetch, mTLS client, first token) by
// Connect.
func (c *Container) Pix(ctx context.Context) (*pix.Service, error) {
	c.pixOnce.Do(func() {
		store, err := c.Secrets(ctx)
		if err != nil {
			c.pixErr = err
			return
		}
		c.pixSvc = pix.NewService(pix.Config{
			BaseURL:      c.cfg.PixBaseURL,
			ClientID:     c.cfg.PixClientID,
			ClientSecret: c.cfg.PixClientSecret,
			ProjectID:    c.cfg.ProjectID,
			Environment:  c.cfg.Environment,
			ServiceTag:   c.cfg.ServiceName,
		}, store, c.log)
	})
	return c.pixSvc, c.pixErr
}

// Storage returns the shared object-storage client.
func (c *Container) Storage(ctx context.Context) (*storage.Client, error) {
	c.storageOnce.Do(func() {
		var opts []option.ClientOption
		if c.cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.cfg.CredentialsFile))
		}
		c.storageCli, c.storageErr = storage.NewClient(ctx, opts...)
	})
	return c.storageCli, c.storageErr
}

// ChargeService composes the charge use case from the adapters.
func (c *Container) ChargeService(ctx context.Context) (charge.Service, error) {
	c.chargeOnce.Do(func() {
		mongoCli, err := c.Mongo(ctx)
		if err != nil {
			c.chargeErr = err
			return
		}
		identitySvc, err := c.Identity(ctx)
		if err != nil {
			c.chargeErr = err
			return
		}
		pixSvc, err := c.Pix(ctx)
		if err != nil {
			c.chargeErr = err
			return
		}
		storageCli, err := c.Storage(ctx)
		if err != nil {
			c.chargeErr = err
			return
		}

		accounts := repositories.NewAccountRepository(mongoCli, identitySvc)
		admin := repositories.NewAdminRepository(mongoCli, c.Cache(), c.cfg.AdminCacheTTL, c.log)
		store := objectstore.NewService(storageCli, c.cfg.QRCodeBucket, c.cfg.SignedURLTTL, c.log)

		c.chargeSvc = charge.NewService(accounts, admin, pixSvc, store, c.log)
	})
	return c.chargeSvc, c.chargeErr
}

// Connect brings up every process-wide resource before the server starts
// accepting traffic.
func (c *Container) Connect(ctx context.Context) error {
	if _, err := c.Mongo(ctx); err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if _, err := c.Identity(ctx); err != nil {
		return fmt.Errorf("connect identity provider: %w", err)
	}
	if _, err := c.Storage(ctx); err != nil {
		return fmt.Errorf("connect object storage: %w", err)
	}

	pixSvc, err := c.Pix(ctx)
	if err != nil {
		return fmt.Errorf("build pix provider: %w", err)
	}
	if err := pixSvc.Connect(ctx); err != nil {
		return fmt.Errorf("connect pix provider: %w", err)
	}

	// The cache is best effort: probe it, warn, move on.
	if _, err := c.Cache().GetString(ctx, "connect-probe"); err != nil && !errors.Is(err, repositories.ErrCacheMiss) {
		c.log.WithError(err).Warn("admin-config cache unavailable")
	}

	return nil
}

// Close releases every held resource. Safe to call after a partial
// Connect; capabilities that were never built are skipped.
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.pixSvc != nil {
		if err := c.pixSvc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pix provider: %w", err))
		}
	}
	if c.storageCli != nil {
		if err := c.storageCli.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close object storage: %w", err))
		}
	}
	if c.secretStore != nil {
		if err := c.secretStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close secret store: %w", err))
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.mongoCli != nil {
		if err := c.mongoCli.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}

	return errors.Join(errs...)
}
