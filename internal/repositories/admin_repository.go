package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pixcharge/internal/services/charge"

	"github.com/sirupsen/logrus"
)

// Cache keys for the three admin values.
const (
	cacheKeyPixKey      = "admin:pix_key"
	cacheKeyExpiration  = "admin:pix_expiration_time"
	cacheKeyRequestType = "admin:pix_request_type"
)

type adminRequestTypes struct {
	PixServicePayment string `bson:"pix_service_payment"`
}

type adminDocument struct {
	PixKey              string            `bson:"pix_key"`
	PixExpirationTime   *int              `bson:"pix_expiration_time"`
	PaymentRequestTypes adminRequestTypes `bson:"payment_request_types"`
}

// adminDocumentSource loads the singleton admin record.
type adminDocumentSource interface {
	Load(ctx context.Context) (adminDocument, error)
}

type mongoAdminSource struct {
	payment *mongo.Collection
}

func (s mongoAdminSource) Load(ctx context.Context) (adminDocument, error) {
	var doc adminDocument
	err := s.payment.FindOne(ctx, bson.D{}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return adminDocument{}, fmt.Errorf("%w: admin record missing", charge.ErrAdminNotConfigured)
		}
		return adminDocument{}, fmt.Errorf("load admin record: %w", err)
	}
	return doc, nil
}

// AdminRepository exposes the three admin payment values as independent
// reads, each cached in redis with a TTL. Cache failures degrade to a
// database read, never to a request failure.
type AdminRepository struct {
	source adminDocumentSource
	cache  CacheRepository
	ttl    time.Duration
	log    *logrus.Logger
}

func NewAdminRepository(client *mongo.Client, cache CacheRepository, ttl time.Duration, log *logrus.Logger) *AdminRepository {
	return &AdminRepository{
		source: mongoAdminSource{payment: client.Database(AdminDatabase).Collection(adminCollection)},
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

// PixKey returns the merchant PIX key.
func (r *AdminRepository) PixKey(ctx context.Context) (string, error) {
	if v, err := r.cache.GetString(ctx, cacheKeyPixKey); err == nil {
		return v, nil
	}

	doc, err := r.source.Load(ctx)
	if err != nil {
		return "", err
	}
	if doc.PixKey == "" {
		return "", fmt.Errorf("%w: pix_key", charge.ErrAdminNotConfigured)
	}

	r.cacheString(ctx, cacheKeyPixKey, doc.PixKey)
	return doc.PixKey, nil
}

// ExpirationSeconds returns the charge expiration window.
func (r *AdminRepository) ExpirationSeconds(ctx context.Context) (int, error) {
	if v, err := r.cache.GetInt(ctx, cacheKeyExpiration); err == nil {
		return v, nil
	}

	doc, err := r.source.Load(ctx)
	if err != nil {
		return 0, err
	}
	if doc.PixExpirationTime == nil || *doc.PixExpirationTime <= 0 {
		return 0, fmt.Errorf("%w: pix_expiration_time", charge.ErrAdminNotConfigured)
	}

	if err := r.cache.SetInt(ctx, cacheKeyExpiration, *doc.PixExpirationTime, r.ttl); err != nil {
		r.log.WithError(err).Warn("could not cache admin expiration")
	}
	return *doc.PixExpirationTime, nil
}

// RequestType returns the payment request-type label.
func (r *AdminRepository) RequestType(ctx context.Context) (string, error) {
	if v, err := r.cache.GetString(ctx, cacheKeyRequestType); err == nil {
		return v, nil
	}

	doc, err := r.source.Load(ctx)
	if err != nil {
		return "", err
	}
	if doc.PaymentRequestTypes.PixServicePayment == "" {
		return "", fmt.Errorf("%w: payment_request_types.pix_service_payment", charge.ErrAdminNotConfigured)
	}

	r.cacheString(ctx, cacheKeyRequestType, doc.PaymentRequestTypes.PixServicePayment)
	return doc.PaymentRequestTypes.PixServicePayment, nil
}

func (r *AdminRepository) cacheString(ctx context.Context, key, value string) {
	if err := r.cache.SetString(ctx, key, value, r.ttl); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("could not cache admin value")
	}
}
