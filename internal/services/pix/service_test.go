package pix

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"pixcharge/internal/models"
	"pixcharge/internal/services/charge"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeSecrets struct {
	data    []byte
	err     error
	gotName string
}

func (f *fakeSecrets) Access(_ context.Context, name string) ([]byte, error) {
	f.gotName = name
	return f.data, f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// readyService returns a service already in the ready state, bound to
// the given test server, skipping the certificate dance.
func readyService(baseURL string) *Service {
	s := NewService(Config{BaseURL: baseURL, ClientID: "id", ClientSecret: "secret"}, nil, testLogger())
	s.client = resty.New().SetBaseURL(baseURL)
	s.state = stateReady
	s.token = "test-token"
	s.tokenExp = time.Now().Add(time.Hour)
	return s
}

func testPayload() models.PixChargePayload {
	return models.PixChargePayload{
		Calendar:    models.PixCalendar{Expiration: 3600},
		Debtor:      models.PixDebtor{CPF: "77777777777", Name: "Fulano de Tal"},
		Value:       models.PixValue{Original: "10.00"},
		Key:         "k@pix",
		RequestType: "Cobrança",
	}
}

func TestService_CertificateSecretName(t *testing.T) {
	s := NewService(Config{
		ProjectID:   "proj-1",
		Environment: "main",
		ServiceTag:  "domain-payment",
	}, nil, testLogger())

	assert.Equal(t,
		"projects/proj-1/secrets/main_domain-payment_CERTIFICATE/versions/latest",
		s.certificateSecretName(),
	)
}

func TestService_CreateCharge(t *testing.T) {
	image := []byte("png-bytes")
	imageB64 := base64.StdEncoding.EncodeToString(image)

	t.Run("creates charge and decodes qr image", func(t *testing.T) {
		var gotBody models.PixChargePayload
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v2/cob", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"txid":"tx1","status":"ATIVA","loc":{"id":7}}`))
		})
		mux.HandleFunc("GET /v2/loc/7/qrcode", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"qrcode":       "copia-e-cola",
				"imagemQrcode": "data:image/png;base64," + imageB64,
			})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := readyService(srv.URL)
		result, err := s.CreateCharge(context.Background(), testPayload())

		assert.NoError(t, err)
		assert.Equal(t, "copia-e-cola", result.CopyPaste)
		assert.Equal(t, image, result.QRImage)
		assert.Equal(t, testPayload(), gotBody)
	})

	t.Run("missing image is a transient fault", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v2/cob", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"txid":"tx1","loc":{"id":7}}`))
		})
		mux.HandleFunc("GET /v2/loc/7/qrcode", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"qrcode":"copia-e-cola"}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := readyService(srv.URL)
		_, err := s.CreateCharge(context.Background(), testPayload())

		assert.ErrorIs(t, err, charge.ErrQRImageUnavailable)
	})

	t.Run("psp rejection is a hard failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v2/cob", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"nome":"cobv_invalida"}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := readyService(srv.URL)
		_, err := s.CreateCharge(context.Background(), testPayload())

		assert.ErrorIs(t, err, charge.ErrChargeCreation)
	})

	t.Run("not connected", func(t *testing.T) {
		s := NewService(Config{}, nil, testLogger())
		_, err := s.CreateCharge(context.Background(), testPayload())
		assert.ErrorIs(t, err, charge.ErrChargeCreation)
	})
}

func TestService_Connect(t *testing.T) {
	t.Run("invalid certificate material", func(t *testing.T) {
		secrets := &fakeSecrets{data: []byte("not a pem")}
		s := NewService(Config{
			ProjectID:   "proj-1",
			Environment: "dev",
			ServiceTag:  "domain-payment",
		}, secrets, testLogger())

		err := s.Connect(context.Background())

		assert.ErrorIs(t, err, ErrCertificate)
		assert.Equal(t, "projects/proj-1/secrets/dev_domain-payment_CERTIFICATE/versions/latest", secrets.gotName)
		// Failed connect must leave nothing behind.
		assert.Empty(t, s.certPath)
		assert.Equal(t, stateUninitialized, s.state)
	})

	t.Run("connect after close is rejected", func(t *testing.T) {
		s := NewService(Config{}, &fakeSecrets{}, testLogger())
		assert.NoError(t, s.Close())
		assert.ErrorIs(t, s.Connect(context.Background()), ErrClosed)
	})
}

func TestService_Close(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cert-*.pem")
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	s := NewService(Config{}, nil, testLogger())
	s.state = stateReady
	s.certPath = f.Name()

	assert.NoError(t, s.Close())
	_, statErr := os.Stat(f.Name())
	assert.True(t, os.IsNotExist(statErr), "certificate file must be removed")

	// Idempotent.
	assert.NoError(t, s.Close())
}

func TestDecodeQRImage(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, err := decodeQRImage("data:image/png;base64," + encoded)
	assert.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = decodeQRImage(encoded)
	assert.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = decodeQRImage("data:image/png;base64,!!!")
	assert.Error(t, err)
}
