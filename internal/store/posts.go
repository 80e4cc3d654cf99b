package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"socialsync-platform/models"
)

// ErrNotFound is returned when a post id does not resolve to a document.
var ErrNotFound = errors.New("post not found")

// PostStore is the document-store boundary for posts. Handlers and the
// scheduler depend on this interface so they can be exercised without a
// running MongoDB.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	// PublishDue transitions every scheduled post whose scheduled_for has
	// passed to posted, as a single batch, and returns how many changed.
	PublishDue(ctx context.Context, now int64) (int64, error)
}

type MongoPostStore struct {
	col *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{col: db.Collection("posts")}
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %v", err)
	}
	return nil
}

func (s *MongoPostStore) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %v", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %v", err)
	}

	// Newest first by scheduled time, falling back to creation time for
	// drafts saved without one. Sorted here rather than in the query to
	// avoid a composite index on user_id + scheduled_for.
	sort.SliceStable(posts, func(i, j int) bool {
		return sortKey(posts[i]) > sortKey(posts[j])
	})

	return posts, nil
}

func sortKey(p models.Post) int64 {
	if p.ScheduledFor != 0 {
		return p.ScheduledFor
	}
	return p.CreatedAt
}

func (s *MongoPostStore) Get(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %v", err)
	}
	return &post, nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete post: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PublishDue issues the sweep as one UpdateMany so a concurrent reader
// observes either all pre-sweep or all post-sweep statuses, never a mix.
func (s *MongoPostStore) PublishDue(ctx context.Context, now int64) (int64, error) {
	filter := bson.M{
		"status":        models.PostStatusScheduled,
		"scheduled_for": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.PostStatusPosted,
		"updated_at": now,
	}}

	result, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to publish due posts: %v", err)
	}
	return result.ModifiedCount, nil
}
