package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"noteful/model"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const noteKeyPrefix = "note:"

// NoteCache is a read-through cache for single notes keyed by id.
type NoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noteCacheEntry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// NewNoteCache connects to redisURL and verifies the connection.
func NewNoteCache(ctx context.Context, redisURL string, ttl time.Duration) (*NoteCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewNoteCacheFromClient(client, ttl), nil
}

func NewNoteCacheFromClient(client *redis.Client, ttl time.Duration) *NoteCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &NoteCache{client: client, ttl: ttl}
}

func (e noteCacheEntry) toNote() (*model.Note, error) {
	id, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return nil, fmt.Errorf("cached note has invalid id %q: %w", e.ID, err)
	}
	return &model.Note{
		ID:        id,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.Created,
	}, nil
}

func noteKey(id string) string {
	return noteKeyPrefix + id
}

// GetNote returns the cached note, or nil with no error on a miss.
func (nc *NoteCache) GetNote(ctx context.Context, id string) (*model.Note, error) {
	if id == "" {
		return nil, errors.New("note id cannot be empty")
	}

	data, err := nc.client.Get(ctx, noteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note from cache: %w", err)
	}

	var entry noteCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached note: %w", err)
	}
	return entry.toNote()
}

func (nc *NoteCache) SetNote(ctx context.Context, note *model.Note) error {
	if note == nil || note.ID.IsZero() {
		return errors.New("cannot cache a note without an id")
	}

	data, err := json.Marshal(noteCacheEntry{
		ID:      note.ID.Hex(),
		Title:   note.Title,
		Content: note.Content,
		Created: note.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	if err := nc.client.Set(ctx, noteKey(note.ID.Hex()), data, nc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache note: %w", err)
	}
	return nil
}

func (nc *NoteCache) DeleteNote(ctx context.Context, id string) error {
	if err := nc.client.Del(ctx, noteKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to evict note: %w", err)
	}
	return nil
}

func (nc *NoteCache) Close() error {
	return nc.client.Close()
}
