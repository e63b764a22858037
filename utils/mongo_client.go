package utils

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects the process-wide client, attaches the pool monitor
// and verifies the deployment is reachable. The caller owns Disconnect.
func NewMongoClient(ctx context.Context, clientOpts *options.ClientOptions) (*mongo.Client, error) {
	clientOpts.SetPoolMonitor(NewPoolMonitor())

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.Info("connected to MongoDB")
	return client, nil
}
