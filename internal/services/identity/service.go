// Package identity verifies bearer tokens against the identity provider
// and resolves user display names. It is a pure verification layer; the
// account profile lives in the document database.
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/sirupsen/logrus"
)

// Service wraps the identity provider's admin client.
type Service struct {
	client *auth.Client
	log    *logrus.Logger
}

// NewService builds the identity client for the given project. When
// credentialsFile is empty, application-default credentials are used.
func NewService(ctx context.Context, projectID, credentialsFile string, log *logrus.Logger) (*Service, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize identity app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize identity auth client: %w", err)
	}

	return &Service{client: client, log: log}, nil
}

// Authenticate verifies the token's signature and expiry and returns the
// stable user id. Any verification failure is ErrUnauthenticated; the
// caller never learns why the provider rejected the token.
func (s *Service) Authenticate(ctx context.Context, bearerToken string) (string, error) {
	token, err := s.client.VerifyIDToken(ctx, bearerToken)
	if err != nil {
		s.log.WithError(err).Debug("token verification failed")
		return "", ErrUnauthenticated
	}
	return token.UID, nil
}

// DisplayName returns the user's display name from the identity provider.
func (s *Service) DisplayName(ctx context.Context, uid string) (string, error) {
	record, err := s.client.GetUser(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("%w: user record lookup failed", ErrUnauthenticated)
	}
	return record.DisplayName, nil
}
