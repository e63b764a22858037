package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is the persisted notes document. Score is only populated by text
// searches and is never stored.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created" json:"created"`
	Score     float64            `bson:"score,omitempty" json:"-"`
}
