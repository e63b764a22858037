package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"noteful/model"
	"noteful/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNoteNotFound is returned when no document matches the given id.
var ErrNoteNotFound = errors.New("note not found")

const defaultOpTimeout = 5 * time.Second

type NotesRepo struct {
	MongoCollection *mongo.Collection
	// OpTimeout bounds every single call; zero means defaultOpTimeout.
	OpTimeout time.Duration
}

func GetNotesRepo(client *mongo.Client, dbName, collection string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(dbName).Collection(collection),
		OpTimeout:       defaultOpTimeout,
	}
}

func (r *NotesRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.OpTimeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *NotesRepo) track(operation string) func() {
	timer := utils.TrackDBOperation(operation, r.MongoCollection.Name())
	return func() { timer.ObserveDuration() }
}

// FindNotes lists notes. With an empty term every note is returned in
// creation order; otherwise a $text search over title and content is run and
// results come back by descending textScore.
func (r *NotesRepo) FindNotes(ctx context.Context, searchTerm string) ([]*model.Note, error) {
	defer r.track("find")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}})

	if term := strings.TrimSpace(searchTerm); term != "" {
		filter["$text"] = bson.M{"$search": term}
		score := bson.M{"$meta": "textScore"}
		opts = options.Find().
			SetProjection(bson.M{"score": score}).
			SetSort(bson.D{{Key: "score", Value: score}, {Key: "created", Value: 1}})
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (r *NotesRepo) FindNoteByID(ctx context.Context, id primitive.ObjectID) (*model.Note, error) {
	defer r.track("find_one")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note %s: %w", id.Hex(), err)
	}
	return &note, nil
}

// CreateNote inserts note, assigning its ID and CreatedAt when unset.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	defer r.track("insert")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	note.Score = 0

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// UpdateNote replaces title and content and returns the document as it is
// after the update. _id and created are never touched.
func (r *NotesRepo) UpdateNote(ctx context.Context, id primitive.ObjectID, title, content string) (*model.Note, error) {
	defer r.track("update")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"title":   title,
			"content": content,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note %s: %w", id.Hex(), err)
	}
	return &note, nil
}

func (r *NotesRepo) DeleteNote(ctx context.Context, id primitive.ObjectID) error {
	defer r.track("delete")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NotesRepo) CountNotes(ctx context.Context) (int64, error) {
	defer r.track("count")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

// InsertNotes bulk-inserts notes in order, filling in missing ids and
// timestamps. Used for seeding.
func (r *NotesRepo) InsertNotes(ctx context.Context, notes []*model.Note) (int, error) {
	if len(notes) == 0 {
		return 0, nil
	}
	defer r.track("insert_many")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(notes))
	for _, note := range notes {
		if note.ID.IsZero() {
			note.ID = primitive.NewObjectID()
		}
		if note.CreatedAt.IsZero() {
			note.CreatedAt = now
		}
		docs = append(docs, note)
	}

	result, err := r.MongoCollection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert notes: %w", err)
	}
	return len(result.InsertedIDs), nil
}

// DropNotes removes the whole collection and rebuilds its indexes so the
// collection is immediately searchable again.
func (r *NotesRepo) DropNotes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.MongoCollection.Drop(ctx); err != nil {
		return fmt.Errorf("drop notes: %w", err)
	}
	return SetupIndexes(ctx, r.MongoCollection)
}

// Ping checks that the deployment behind the collection answers.
func (r *NotesRepo) Ping(ctx context.Context) error {
	defer r.track("ping")()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.MongoCollection.Database().Client().Ping(ctx, readpref.Primary())
}
