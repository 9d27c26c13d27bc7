package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect dials MongoDB and verifies the connection with a bounded ping.
// The caller owns the client and is responsible for Disconnect.
func Connect(mongoURL, dbName string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(5)

	client, err := mongo.Connect(opts)

	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	defer cancel()

	err = client.Ping(ctx, nil)

	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(dbName), nil
}
