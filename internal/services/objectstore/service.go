// Package objectstore uploads QR images to cloud storage and issues
// time-limited signed URLs so callers can retrieve them without further
// authorization.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"pixcharge/internal/services/charge"

	"github.com/sirupsen/logrus"
)

// bucketAPI is the slice of the storage client the service uses. Kept
// small so tests can fake it.
type bucketAPI interface {
	NewWriter(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser
	SignedURL(object string, expires time.Time) (string, error)
}

type gcsBucket struct {
	bucket *storage.BucketHandle
}

func (b gcsBucket) NewWriter(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser {
	w := b.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata
	return w
}

func (b gcsBucket) SignedURL(object string, expires time.Time) (string, error) {
	return b.bucket.SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: expires,
	})
}

// Service stores QR images in one bucket. The upload writer is the
// request-scoped session: it is acquired per call and released on every
// exit path, including cancellation, so no network session outlives the
// request.
type Service struct {
	bucket     bucketAPI
	bucketName string
	urlTTL     time.Duration
	log        *logrus.Logger
}

// NewService creates an object store backed by the given storage client.
func NewService(client *storage.Client, bucketName string, urlTTL time.Duration, log *logrus.Logger) *Service {
	return &Service{
		bucket:     gcsBucket{bucket: client.Bucket(bucketName)},
		bucketName: bucketName,
		urlTTL:     urlTTL,
		log:        log,
	}
}

// Upload writes the image and returns a signed URL for it. Partial writes
// are not cleaned up; the next upload for the same object overwrites
// them.
func (s *Service) Upload(ctx context.Context, image []byte, objectName string) (string, error) {
	w := s.bucket.NewWriter(ctx, objectName, "image/png", map[string]string{
		"size": strconv.Itoa(len(image)),
	})

	closed := false
	release := func() error {
		if closed {
			return nil
		}
		closed = true
		return w.Close()
	}
	// The deferred release covers panic and cancellation paths; the
	// explicit calls below handle the normal ones.
	defer func() { _ = release() }()

	if _, err := w.Write(image); err != nil {
		_ = release()
		return "", fmt.Errorf("%w: write %q: %v", charge.ErrUpload, objectName, err)
	}
	if err := release(); err != nil {
		return "", fmt.Errorf("%w: commit %q: %v", charge.ErrUpload, objectName, err)
	}

	uri, err := s.bucket.SignedURL(objectName, time.Now().Add(s.urlTTL))
	if err != nil {
		return "", fmt.Errorf("%w: sign %q: %v", charge.ErrUpload, objectName, err)
	}

	s.log.WithFields(logrus.Fields{
		"bucket": s.bucketName,
		"object": objectName,
		"bytes":  len(image),
	}).Debug("qr image uploaded")

	return uri, nil
}
