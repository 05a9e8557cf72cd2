package charge

import (
	"context"

	"pixcharge/internal/models"
)

// Service is the charge use case contract.
type Service interface {
	Execute(ctx context.Context, req models.ChargeRequest, user models.AuthenticatedUser) (models.ChargeResponse, error)
}

// Dependencies required by the charge service.

// AccountDirectory resolves an authenticated user to a debtor profile.
type AccountDirectory interface {
	FindByUID(ctx context.Context, uid string) (models.AccountProfile, error)
}

// AdminConfigSource exposes the three administrative payment values as
// independent reads so callers can issue them concurrently.
type AdminConfigSource interface {
	PixKey(ctx context.Context) (string, error)
	ExpirationSeconds(ctx context.Context) (int, error)
	RequestType(ctx context.Context) (string, error)
}

// PixChargeProvider creates an immediate charge at the PSP and returns
// the QR artifacts.
type PixChargeProvider interface {
	CreateCharge(ctx context.Context, payload models.PixChargePayload) (models.PixChargeResult, error)
}

// ObjectStore durably stores a QR image and returns a retrievable URI.
// Implementations own the upload session and release it on every exit
// path, including cancellation.
type ObjectStore interface {
	Upload(ctx context.Context, image []byte, objectName string) (string, error)
}
