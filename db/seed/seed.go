// Package seed holds the sample notes used to populate development and test
// databases.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"noteful/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

//go:embed notes.yaml
var defaultNotes []byte

type seedNote struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Content string    `yaml:"content"`
	Created time.Time `yaml:"created"`
}

// Notes returns the embedded seed set.
func Notes() ([]*model.Note, error) {
	return Parse(defaultNotes)
}

func Load(path string) ([]*model.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of notes. Ids are optional but must be valid
// ObjectID hex when present; every note needs a title.
func Parse(data []byte) ([]*model.Note, error) {
	var raw []seedNote
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("seed note %d: missing title", i)
		}
		note := &model.Note{
			Title:     strings.TrimSpace(r.Title),
			Content:   r.Content,
			CreatedAt: r.Created.UTC(),
		}
		if r.ID != "" {
			id, err := primitive.ObjectIDFromHex(r.ID)
			if err != nil {
				return nil, fmt.Errorf("seed note %d: invalid id %q: %w", i, r.ID, err)
			}
			if seen[r.ID] {
				return nil, fmt.Errorf("seed note %d: duplicate id %q", i, r.ID)
			}
			seen[r.ID] = true
			note.ID = id
		}
		notes = append(notes, note)
	}
	return notes, nil
}
