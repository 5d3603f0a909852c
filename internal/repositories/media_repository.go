package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaRepository defines the interface for post attachment operations
type MediaRepository interface {
	AddMedia(ctx context.Context, media *models.Media) error
	GetMediaByID(ctx context.Context, id string) (*models.Media, error)
	GetMediaByPostID(ctx context.Context, postID uint) ([]models.Media, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// AddMedia stores a new attachment document in MongoDB
func (r *MongoMediaRepository) AddMedia(ctx context.Context, media *models.Media) error {
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, media)
	return err
}

// GetMediaByID retrieves an attachment by ID from MongoDB
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id string) (*models.Media, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid media ID format: %w", err)
	}

	var media models.Media
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("media not found")
		}
		return nil, err
	}
	return &media, nil
}

// GetMediaByPostID retrieves all attachments of a post, in position order.
func (r *MongoMediaRepository) GetMediaByPostID(ctx context.Context, postID uint) ([]models.Media, error) {
	var media []models.Media
	findOptions := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteByPostID removes all attachments of a post from MongoDB
func (r *MongoMediaRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	return err
}
