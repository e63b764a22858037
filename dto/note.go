package dto

import (
	"time"

	"noteful/model"
)

// MissingTitleMessage is returned whenever a create or update omits the title.
const MissingTitleMessage = "Missing `title` in request body"

// NoteRequest is the body of POST /api/notes and PUT /api/notes/:id.
type NoteRequest struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:      note.ID.Hex(),
		Title:   note.Title,
		Content: note.Content,
		Created: note.CreatedAt,
	}
}

// ToNoteResponses never returns nil so an empty result encodes as [].
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, ToNoteResponse(note))
	}
	return responses
}
