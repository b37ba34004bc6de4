package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionRunner executes a function inside a transaction. Abstracted so
// engine tests can run the function directly; mongo.Session cannot be faked.
type TransactionRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxnRunner runs transactions on a MongoDB client session.
type MongoTxnRunner struct {
	client *mongo.Client
}

func NewMongoTxnRunner(client *mongo.Client) *MongoTxnRunner {
	return &MongoTxnRunner{client: client}
}

func (r *MongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
