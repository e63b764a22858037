package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"noteful/db/seed"
	"noteful/model"
	"noteful/repository"
	"noteful/test/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedRepo(t *testing.T, repo *repository.NotesRepo) []*model.Note {
	t.Helper()
	notes, err := seed.Notes()
	require.NoError(t, err)
	n, err := repo.InsertNotes(context.Background(), testutils.CloneNotes(notes))
	require.NoError(t, err)
	require.Equal(t, len(notes), n)
	return notes
}

func TestFindNotes(t *testing.T) {
	_, repo, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	notes := seedRepo(t, repo)

	t.Run("all notes in creation order", func(t *testing.T) {
		found, err := repo.FindNotes(ctx, "")
		require.NoError(t, err)
		require.Len(t, found, len(notes))
		for i := range notes {
			assert.Equal(t, notes[i].ID, found[i].ID)
			assert.True(t, notes[i].CreatedAt.Equal(found[i].CreatedAt))
		}
	})

	t.Run("text search", func(t *testing.T) {
		found, err := repo.FindNotes(ctx, "gaga")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "000000000000000000000003", found[0].ID.Hex())
		assert.Positive(t, found[0].Score)
	})

	t.Run("title matches outrank content matches", func(t *testing.T) {
		found, err := repo.FindNotes(ctx, "government lorem")
		require.NoError(t, err)
		require.NotEmpty(t, found)
		assert.Equal(t, "000000000000000000000001", found[0].ID.Hex())
		for i := 1; i < len(found); i++ {
			assert.GreaterOrEqual(t, found[i-1].Score, found[i].Score)
		}
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		found, err := repo.FindNotes(ctx, "This will not be a valid search")
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestNoteCRUD(t *testing.T) {
	_, repo, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	note := &model.Note{Title: "Test Note", Content: "Test Content"}
	require.NoError(t, repo.CreateNote(ctx, note))
	assert.False(t, note.ID.IsZero())
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, note.CreatedAt.Location())

	found, err := repo.FindNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Title, found.Title)
	assert.Equal(t, note.Content, found.Content)
	assert.True(t, note.CreatedAt.Equal(found.CreatedAt))

	updated, err := repo.UpdateNote(ctx, note.ID, "Updated Title", "Updated Content")
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "Updated Content", updated.Content)
	assert.True(t, note.CreatedAt.Equal(updated.CreatedAt), "created never changes")

	count, err := repo.CountNotes(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteNote(ctx, note.ID))
	_, err = repo.FindNoteByID(ctx, note.ID)
	assert.True(t, errors.Is(err, repository.ErrNoteNotFound))
}

func TestMissingNote(t *testing.T) {
	_, repo, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex("DDDDDDDDDDDDDDDDDDDDDDDD")
	require.NoError(t, err)

	_, err = repo.FindNoteByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)

	_, err = repo.UpdateNote(ctx, id, "title", "content")
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)

	err = repo.DeleteNote(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestDropNotesRebuildsIndexes(t *testing.T) {
	_, repo, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedRepo(t, repo)

	require.NoError(t, repo.DropNotes(ctx))
	count, err := repo.CountNotes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	seedRepo(t, repo)
	found, err := repo.FindNotes(ctx, "recession")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestPing(t *testing.T) {
	_, repo, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	assert.NoError(t, repo.Ping(context.Background()))
}
