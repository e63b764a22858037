package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TextIndexName    = "notes_text"
	CreatedIndexName = "notes_created"
)

// NoteIndexes are the indexes the notes collection relies on: the weighted
// text index used by searchTerm and the created index behind plain listing.
func NoteIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "content", Value: "text"},
			},
			Options: options.Index().
				SetName(TextIndexName).
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "content", Value: 5},
				}),
		},
		{
			Keys: bson.D{{Key: "created", Value: 1}},
			Options: options.Index().
				SetName(CreatedIndexName),
		},
	}
}

// SetupIndexes creates the notes indexes. Creating an existing index with
// the same definition is a no-op, so this runs on every start.
func SetupIndexes(ctx context.Context, coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	names, err := coll.Indexes().CreateMany(ctx, NoteIndexes())
	if err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	slog.Info("notes indexes ready", "collection", coll.Name(), "indexes", names)
	return nil
}
