package charge

import (
	"context"
	"fmt"
	"sync"

	"pixcharge/internal/models"

	"github.com/sirupsen/logrus"
)

type service struct {
	accounts AccountDirectory
	admin    AdminConfigSource
	psp      PixChargeProvider
	store    ObjectStore
	log      *logrus.Logger
}

// NewService creates a new charge service
func NewService(
	accounts AccountDirectory,
	admin AdminConfigSource,
	psp PixChargeProvider,
	store ObjectStore,
	log *logrus.Logger,
) Service {
	return &service{
		accounts: accounts,
		admin:    admin,
		psp:      psp,
		store:    store,
		log:      log,
	}
}

// Execute runs one charge transaction end to end. Steps execute in order;
// the three admin reads are issued concurrently and joined before the
// payload is built.
func (s *service) Execute(
	ctx context.Context,
	req models.ChargeRequest,
	user models.AuthenticatedUser,
) (models.ChargeResponse, error) {
	account, err := s.accounts.FindByUID(ctx, user.UID)
	if err != nil {
		return models.ChargeResponse{}, fmt.Errorf("resolve account: %w", err)
	}

	admin, err := s.readAdminConfig(ctx)
	if err != nil {
		return models.ChargeResponse{}, fmt.Errorf("read admin config: %w", err)
	}

	payload := models.PixChargePayload{
		Calendar:    models.PixCalendar{Expiration: admin.ExpirationSeconds},
		Debtor:      models.PixDebtor{CPF: account.CPF, Name: account.Name},
		Value:       models.PixValue{Original: models.NormalizeChargeValue(req.ChargeValue)},
		Key:         admin.PixKey,
		RequestType: admin.RequestType,
	}

	result, err := s.psp.CreateCharge(ctx, payload)
	if err != nil {
		return models.ChargeResponse{}, fmt.Errorf("create charge: %w", err)
	}

	objectName := fmt.Sprintf("pixQRCodeImages/%s.png", user.UID)
	uri, err := s.store.Upload(ctx, result.QRImage, objectName)
	if err != nil {
		// The PSP charge already exists at this point and is not rolled
		// back; the caller gets the upload failure.
		return models.ChargeResponse{}, fmt.Errorf("upload qr image: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"uid":    user.UID,
		"object": objectName,
	}).Info("pix charge created")

	return models.ChargeResponse{
		Msg:           "ok",
		PixCopyPaste:  result.CopyPaste,
		PixQRCodePath: uri,
	}, nil
}

// readAdminConfig fetches the three admin values concurrently. The reads
// are independent views of the same immutable record, so ordering between
// them does not matter; the join does.
func (s *service) readAdminConfig(ctx context.Context) (models.AdminConfig, error) {
	var (
		wg sync.WaitGroup

		key     string
		exp     int
		reqType string

		keyErr, expErr, typeErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		key, keyErr = s.admin.PixKey(ctx)
	}()
	go func() {
		defer wg.Done()
		exp, expErr = s.admin.ExpirationSeconds(ctx)
	}()
	go func() {
		defer wg.Done()
		reqType, typeErr = s.admin.RequestType(ctx)
	}()
	wg.Wait()

	for _, err := range []error{keyErr, expErr, typeErr} {
		if err != nil {
			return models.AdminConfig{}, err
		}
	}

	return models.AdminConfig{
		PixKey:            key,
		ExpirationSeconds: exp,
		RequestType:       reqType,
	}, nil
}
