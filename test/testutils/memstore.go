package testutils

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"noteful/model"
	"noteful/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process stand-in for repository.NotesRepo. Text
// search is approximated by case-insensitive word matching with the same
// title/content weights as the Mongo text index.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[primitive.ObjectID]model.Note
	// Err, when set, is returned by every operation.
	Err error
	Now func() time.Time
}

func NewMemoryStore(seed ...*model.Note) *MemoryStore {
	s := &MemoryStore{
		notes: make(map[primitive.ObjectID]model.Note),
		Now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
	for _, n := range seed {
		_ = s.CreateNote(context.Background(), n)
	}
	return s
}

func (s *MemoryStore) FindNotes(_ context.Context, searchTerm string) ([]*model.Note, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(searchTerm))
	out := make([]*model.Note, 0, len(s.notes))
	for _, n := range s.notes {
		n := n
		if len(terms) > 0 {
			n.Score = score(n, terms)
			if n.Score == 0 {
				continue
			}
		}
		out = append(out, &n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func score(n model.Note, terms []string) float64 {
	title := strings.Fields(strings.ToLower(n.Title))
	content := strings.Fields(strings.ToLower(n.Content))
	var total float64
	for _, term := range terms {
		total += 10 * float64(countWord(title, term))
		total += 5 * float64(countWord(content, term))
	}
	return total
}

func countWord(words []string, term string) int {
	count := 0
	for _, w := range words {
		if strings.Trim(w, ".,!?;:'\"") == term {
			count++
		}
	}
	return count
}

func (s *MemoryStore) FindNoteByID(_ context.Context, id primitive.ObjectID) (*model.Note, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	return &n, nil
}

func (s *MemoryStore) CreateNote(_ context.Context, note *model.Note) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if _, exists := s.notes[note.ID]; exists {
		return errors.New("duplicate key")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = s.Now()
	}
	note.Score = 0
	s.notes[note.ID] = *note
	return nil
}

func (s *MemoryStore) UpdateNote(_ context.Context, id primitive.ObjectID, title, content string) (*model.Note, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	n.Title = title
	n.Content = content
	s.notes[id] = n
	return &n, nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, id primitive.ObjectID) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) CountNotes(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.notes)), nil
}

// Ping fails with Err when one is set.
func (s *MemoryStore) Ping(_ context.Context) error {
	return s.Err
}

// InsertNotes stores every note, stopping at the first duplicate id.
func (s *MemoryStore) InsertNotes(ctx context.Context, notes []*model.Note) (int, error) {
	for i, n := range notes {
		if err := s.CreateNote(ctx, n); err != nil {
			return i, err
		}
	}
	return len(notes), nil
}

func (s *MemoryStore) DropNotes(_ context.Context) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[primitive.ObjectID]model.Note)
	return nil
}
