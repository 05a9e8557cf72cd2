package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pixcharge/internal/models"
	"pixcharge/internal/services/charge"
)

// DisplayNameProvider resolves the user's display name. The identity
// service implements it; the account document itself only carries the
// CPF.
type DisplayNameProvider interface {
	DisplayName(ctx context.Context, uid string) (string, error)
}

type accountDocument struct {
	UID string `bson:"uid"`
	CPF string `bson:"cpf"`
}

// AccountRepository reads debtor profiles from the users collection.
type AccountRepository struct {
	users *mongo.Collection
	names DisplayNameProvider
}

func NewAccountRepository(client *mongo.Client, names DisplayNameProvider) *AccountRepository {
	return &AccountRepository{
		users: client.Database(AccountDatabase).Collection(usersCollection),
		names: names,
	}
}

// FindByUID returns the debtor profile for an authenticated user.
func (r *AccountRepository) FindByUID(ctx context.Context, uid string) (models.AccountProfile, error) {
	var doc accountDocument
	err := r.users.FindOne(ctx, bson.M{"uid": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.AccountProfile{}, fmt.Errorf("%w: uid %s", charge.ErrAccountNotFound, uid)
		}
		return models.AccountProfile{}, fmt.Errorf("find account: %w", err)
	}

	name, err := r.names.DisplayName(ctx, uid)
	if err != nil {
		return models.AccountProfile{}, fmt.Errorf("resolve display name: %w", err)
	}

	return models.AccountProfile{CPF: doc.CPF, Name: name}, nil
}
