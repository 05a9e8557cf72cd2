// Package repositories provides the document-database adapters for
// accounts and admin configuration, plus the redis cache in front of the
// admin reads.
package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database and collection names in the document store.
const (
	AccountDatabase = "account"
	AdminDatabase   = "admin"

	usersCollection = "users"
	adminCollection = "payment"
)

// NewMongoClient connects to the document database and verifies the
// connection with a ping.
func NewMongoClient(ctx context.Context, uri, appName string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName(appName))
	if err != nil {
		return nil, fmt.Errorf("connect document database: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping document database: %w", err)
	}
	return client, nil
}
