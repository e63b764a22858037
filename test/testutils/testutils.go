package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"noteful/config"
	"noteful/model"
	"noteful/repository"
	"noteful/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupTestEnvironment points configuration at the test database.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
	if os.Getenv("MONGO_DB_TEST") == "" {
		t.Setenv("MONGO_DB_TEST", "noteful_test")
	}
}

// SetupTestDB connects to TEST_MONGO_URI and returns a NotesRepo bound to a
// collection unique to this test, plus a cleanup that drops it and
// disconnects. Tests are skipped when TEST_MONGO_URI is not set.
func SetupTestDB(t *testing.T) (*mongo.Client, *repository.NotesRepo, func()) {
	t.Helper()
	if os.Getenv("TEST_MONGO_URI") == "" {
		t.Skip("TEST_MONGO_URI not set, skipping MongoDB integration test")
	}
	SetupTestEnvironment(t)

	cfg := config.LoadDatabaseConfig()
	cfg.MinPoolSize = 0

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := utils.NewMongoClient(ctx, cfg.ClientOptions())
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	collection := fmt.Sprintf("notes_%s", uuid.NewString()[:8])
	repo := repository.GetNotesRepo(client, cfg.DatabaseName, collection)
	repo.OpTimeout = cfg.OpTimeout

	if err := repository.SetupIndexes(ctx, repo.MongoCollection); err != nil {
		t.Fatalf("Failed to setup indexes: %v", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repo.MongoCollection.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test collection %s: %v", collection, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}

	return client, repo, cleanup
}

// CloneNotes deep-copies seed notes so tests can mutate them freely.
func CloneNotes(notes []*model.Note) []*model.Note {
	out := make([]*model.Note, len(notes))
	for i, n := range notes {
		c := *n
		out[i] = &c
	}
	return out
}
