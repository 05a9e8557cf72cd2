// Package secrets reads secret material from Google Secret Manager by
// fully qualified versioned name.
package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// Store is a thin wrapper over the Secret Manager client.
type Store struct {
	client *secretmanager.Client
}

// NewStore creates the Secret Manager client. When credentialsFile is
// empty, application-default credentials are used.
func NewStore(ctx context.Context, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize secret manager client: %w", err)
	}
	return &Store{client: client}, nil
}

// Access returns the payload of the named secret version, e.g.
// "projects/p/secrets/name/versions/latest".
func (s *Store) Access(ctx context.Context, name string) ([]byte, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("access secret %q: %w", name, err)
	}
	return result.GetPayload().GetData(), nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
