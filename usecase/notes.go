package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"noteful/dto"
	"noteful/errs"
	"noteful/model"
	"noteful/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoteStore is the persistence the service needs. *repository.NotesRepo
// implements it; stores report a missing document as
// repository.ErrNoteNotFound.
type NoteStore interface {
	FindNotes(ctx context.Context, searchTerm string) ([]*model.Note, error)
	FindNoteByID(ctx context.Context, id primitive.ObjectID) (*model.Note, error)
	CreateNote(ctx context.Context, note *model.Note) error
	UpdateNote(ctx context.Context, id primitive.ObjectID, title, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, id primitive.ObjectID) error
	CountNotes(ctx context.Context) (int64, error)
}

// NoteCache is an optional read-through cache. A nil note with a nil error
// is a miss.
type NoteCache interface {
	GetNote(ctx context.Context, id string) (*model.Note, error)
	SetNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

type NotesService struct {
	NotesRepo NoteStore
	Cache     NoteCache
}

// ParseNoteID converts a path id to an ObjectID. Anything that is not a
// 24 character hex string is reported as not found.
func ParseNoteID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, errs.Wrap(errs.NotFound, "Note not found", err)
	}
	return oid, nil
}

// validateTitle trims the title and rejects blank ones.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errs.New(errs.InvalidArgument, dto.MissingTitleMessage)
	}
	return title, nil
}

// translate maps store errors onto the application taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *errs.Error
	if errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, repository.ErrNoteNotFound) {
		return errs.Wrap(errs.NotFound, "Note not found", err)
	}
	return errs.Wrap(errs.Internal, "", fmt.Errorf("%s: %w", op, err))
}

func (svc *NotesService) ListNotes(ctx context.Context, searchTerm string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.FindNotes(ctx, strings.TrimSpace(searchTerm))
	if err != nil {
		return nil, translate("list notes", err)
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return notes, nil
}

func (svc *NotesService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	oid, err := ParseNoteID(id)
	if err != nil {
		return nil, err
	}

	if cached := svc.cachedNote(ctx, oid); cached != nil {
		return cached, nil
	}

	note, err := svc.NotesRepo.FindNoteByID(ctx, oid)
	if err != nil {
		return nil, translate("get note", err)
	}
	svc.cacheNote(ctx, note)
	return note, nil
}

func (svc *NotesService) CreateNote(ctx context.Context, title, content string) (*model.Note, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	note := &model.Note{Title: title, Content: content}
	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, translate("create note", err)
	}
	return note, nil
}

// UpdateNote replaces title and content wholesale. Validation runs before
// the id is even parsed so a bad body is always a 400. The cached copy is
// evicted on both sides of the store write.
func (svc *NotesService) UpdateNote(ctx context.Context, id, title, content string) (*model.Note, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	oid, err := ParseNoteID(id)
	if err != nil {
		return nil, err
	}

	svc.evictNote(ctx, oid)
	note, err := svc.NotesRepo.UpdateNote(ctx, oid, title, content)
	if err != nil {
		return nil, translate("update note", err)
	}
	// a concurrent GetNote may have re-cached the old document meanwhile
	svc.evictNote(ctx, oid)
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, id string) error {
	oid, err := ParseNoteID(id)
	if err != nil {
		return err
	}
	svc.evictNote(ctx, oid)
	if err := svc.NotesRepo.DeleteNote(ctx, oid); err != nil {
		return translate("delete note", err)
	}
	svc.evictNote(ctx, oid)
	return nil
}

func (svc *NotesService) CountNotes(ctx context.Context) (int64, error) {
	count, err := svc.NotesRepo.CountNotes(ctx)
	if err != nil {
		return 0, translate("count notes", err)
	}
	return count, nil
}

// cachedNote returns nil on a miss. Cache failures are logged and otherwise
// ignored; the store is the source of truth.
func (svc *NotesService) cachedNote(ctx context.Context, id primitive.ObjectID) *model.Note {
	if svc.Cache == nil {
		return nil
	}
	note, err := svc.Cache.GetNote(ctx, id.Hex())
	if err != nil {
		slog.WarnContext(ctx, "note cache read failed", "note_id", id.Hex(), "error", err)
		return nil
	}
	return note
}

func (svc *NotesService) cacheNote(ctx context.Context, note *model.Note) {
	if svc.Cache == nil || note == nil {
		return
	}
	if err := svc.Cache.SetNote(ctx, note); err != nil {
		slog.WarnContext(ctx, "note cache write failed", "note_id", note.ID.Hex(), "error", err)
	}
}

func (svc *NotesService) evictNote(ctx context.Context, id primitive.ObjectID) {
	if svc.Cache == nil {
		return
	}
	if err := svc.Cache.DeleteNote(ctx, id.Hex()); err != nil {
		slog.WarnContext(ctx, "note cache eviction failed", "note_id", id.Hex(), "error", err)
	}
}
