// Package pix owns the PSP client lifecycle and charge creation. The
// client certificate is fetched from the secret store once at connect
// time, materialized to a process-scoped file and removed on Close.
package pix

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"pixcharge/internal/models"
	"pixcharge/internal/services/charge"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Provider states. Connect moves the provider from uninitialized to ready
// exactly once; Closed is terminal.
type state int

const (
	stateUninitialized state = iota
	stateCertificateLoading
	stateReady
	stateClosed
)

// Token refresh slack before the reported expiry.
const tokenExpirySlack = 30 * time.Second

// SecretStore returns secret material by fully qualified versioned name.
type SecretStore interface {
	Access(ctx context.Context, name string) ([]byte, error)
}

// Config holds the PSP endpoint and credential identifiers. The secret
// name for the client certificate is derived from Environment and
// ServiceTag.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	ProjectID    string
	Environment  string
	ServiceTag   string
}

// Service is the PSP charge provider. Safe for concurrent use once
// connected; Connect and Close are serialized by the internal mutex.
type Service struct {
	cfg     Config
	secrets SecretStore
	log     *logrus.Logger

	mu       sync.Mutex
	state    state
	certPath string
	client   *resty.Client
	token    string
	tokenExp time.Time
}

// NewService creates a new PSP provider in the uninitialized state.
func NewService(cfg Config, secrets SecretStore, log *logrus.Logger) *Service {
	return &Service{
		cfg:     cfg,
		secrets: secrets,
		log:     log,
	}
}

// certificateSecretName composes the deterministic versioned secret name
// for the PSP client certificate.
func (s *Service) certificateSecretName() string {
	return fmt.Sprintf(
		"projects/%s/secrets/%s_%s_CERTIFICATE/versions/latest",
		s.cfg.ProjectID, s.cfg.Environment, s.cfg.ServiceTag,
	)
}

// Connect fetches the client certificate, materializes it, builds the
// mTLS client and obtains the first access token. It runs once for the
// provider's lifetime; calling it on a ready provider is a no-op.
func (s *Service) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	}

	s.state = stateCertificateLoading

	pem, err := s.secrets.Access(ctx, s.certificateSecretName())
	if err != nil {
		s.state = stateUninitialized
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	}

	f, err := os.CreateTemp("", "pix-certificate-*.pem")
	if err != nil {
		s.state = stateUninitialized
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	}
	if _, err := f.Write(pem); err != nil {
		f.Close()
		os.Remove(f.Name())
		s.state = stateUninitialized
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		s.state = stateUninitialized
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	}
	s.certPath = f.Name()

	// The PEM bundle carries both the certificate and the private key.
	cert, err := tls.LoadX509KeyPair(s.certPath, s.certPath)
	if err != nil {
		s.removeCertificate()
		s.state = stateUninitialized
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	}

	s.client = resty.New().
		SetBaseURL(s.cfg.BaseURL).
		SetCertificates(cert).
		SetHeader("Content-Type", "application/json")

	if err := s.authenticate(ctx); err != nil {
		s.removeCertificate()
		s.client = nil
		s.state = stateUninitialized
		return err
	}

	s.state = stateReady
	s.log.WithField("base_url", s.cfg.BaseURL).Info("pix provider connected")
	return nil
}

// authenticate performs the client-credentials grant against the PSP.
// Callers must hold s.mu.
func (s *Service) authenticate(ctx context.Context) error {
	var token tokenResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret).
		SetBody(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&token).
		Post("/oauth/token")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorization, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: psp returned %s", ErrAuthorization, resp.Status())
	}

	s.token = token.AccessToken
	s.tokenExp = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return nil
}

// accessToken returns a valid bearer token, re-authenticating when the
// cached one is about to expire.
func (s *Service) accessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateReady {
		if s.state == stateClosed {
			return "", ErrClosed
		}
		return "", ErrNotReady
	}

	if time.Until(s.tokenExp) < tokenExpirySlack {
		if err := s.authenticate(ctx); err != nil {
			return "", err
		}
	}
	return s.token, nil
}

// CreateCharge creates an immediate charge and fetches its QR code. Two
// sequential PSP calls: the charge creation returns a location id, the
// location returns the copy-paste string and the image.
func (s *Service) CreateCharge(ctx context.Context, payload models.PixChargePayload) (models.PixChargeResult, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return models.PixChargeResult{}, fmt.Errorf("%w: %v", charge.ErrChargeCreation, err)
	}

	var created createChargeResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&created).
		Post("/v2/cob")
	if err != nil {
		return models.PixChargeResult{}, fmt.Errorf("%w: %v", charge.ErrChargeCreation, err)
	}
	if resp.IsError() {
		return models.PixChargeResult{}, fmt.Errorf("%w: psp returned %s", charge.ErrChargeCreation, resp.Status())
	}

	var qr qrCodeResponse
	resp, err = s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&qr).
		Get(fmt.Sprintf("/v2/loc/%d/qrcode", created.Loc.ID))
	if err != nil {
		return models.PixChargeResult{}, fmt.Errorf("%w: %v", charge.ErrChargeCreation, err)
	}
	if resp.IsError() {
		return models.PixChargeResult{}, fmt.Errorf("%w: psp returned %s", charge.ErrChargeCreation, resp.Status())
	}

	if qr.ImageQRCode == "" {
		return models.PixChargeResult{}, fmt.Errorf("%w: location %d", charge.ErrQRImageUnavailable, created.Loc.ID)
	}
	image, err := decodeQRImage(qr.ImageQRCode)
	if err != nil {
		return models.PixChargeResult{}, fmt.Errorf("%w: %v", charge.ErrQRImageUnavailable, err)
	}

	return models.PixChargeResult{
		QRImage:   image,
		CopyPaste: qr.QRCode,
	}, nil
}

// Close releases the certificate material. Idempotent; the provider
// cannot be reconnected afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClosed {
		return nil
	}
	s.removeCertificate()
	s.client = nil
	s.state = stateClosed
	return nil
}

// removeCertificate deletes the materialized certificate file, if any.
// Callers must hold s.mu.
func (s *Service) removeCertificate() {
	if s.certPath == "" {
		return
	}
	if err := os.Remove(s.certPath); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).Warn("could not remove psp certificate file")
	}
	s.certPath = ""
}

// decodeQRImage decodes the base64 payload of a data URI like
// "data:image/png;base64,...". A bare base64 string is accepted too.
func decodeQRImage(dataURI string) ([]byte, error) {
	encoded := dataURI
	if idx := strings.Index(dataURI, "base64,"); idx >= 0 {
		encoded = dataURI[idx+len("base64,"):]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
