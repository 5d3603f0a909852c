package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaKind distinguishes image and video attachments.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Per-post attachment limits. Uploads beyond these are rejected with a
// validation error rather than silently dropped.
const (
	MaxImagesPerPost = 3
	MaxVideosPerPost = 1
)

// Media is a post attachment document stored in MongoDB.
type Media struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID    uint               `json:"post_id" bson:"post_id"`
	Kind      MediaKind          `json:"kind" bson:"kind"`
	Filename  string             `json:"filename" bson:"filename"`
	MimeType  string             `json:"mime_type" bson:"mime_type"`
	Data      []byte             `json:"-" bson:"data"`
	Position  int                `json:"position" bson:"position"` // ordering slot for images, 0..2
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
