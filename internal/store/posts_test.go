package store

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"socialsync-platform/models"
)

// These tests run against a real MongoDB instance. Set TEST_MONGO_URI to
// enable them, e.g. TEST_MONGO_URI=mongodb://localhost:27017 go test ./...
func newTestStore(t *testing.T) *MongoPostStore {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	db := client.Database("socialsync_test")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db.Collection("posts").Drop(ctx)
		client.Disconnect(ctx)
	})

	return NewMongoPostStore(db)
}

func TestCreateAssignsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post := &models.Post{
		UserID:       "user-1",
		Content:      "hello",
		Status:       models.PostStatusScheduled,
		ScheduledFor: time.Now().UnixMilli(),
	}
	if err := s.Create(ctx, post); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.ID.IsZero() {
		t.Fatal("expected assigned object id")
	}

	got, err := s.Get(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Content != "hello" || got.UserID != "user-1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "not-a-hex-id"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
	if _, err := s.Get(ctx, primitive.NewObjectID().Hex()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for absent id, got %v", err)
	}
}

func TestDeleteAbsentPostIsNotFound(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(context.Background(), primitive.NewObjectID().Hex()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	for i, offset := range []int64{-3_600_000, 3_600_000, 0} {
		post := &models.Post{
			UserID:       "user-1",
			Content:      string(rune('a' + i)),
			Status:       models.PostStatusScheduled,
			ScheduledFor: now + offset,
			CreatedAt:    now,
		}
		if err := s.Create(ctx, post); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	other := &models.Post{UserID: "user-2", Content: "x", Status: models.PostStatusScheduled, ScheduledFor: now}
	if err := s.Create(ctx, other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	posts, err := s.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts for user-1, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].ScheduledFor < posts[i].ScheduledFor {
			t.Fatalf("posts not sorted newest first: %v before %v",
				posts[i-1].ScheduledFor, posts[i].ScheduledFor)
		}
	}
}

func TestPublishDueSingleBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	seed := []*models.Post{
		{UserID: "u", Content: "due", Status: models.PostStatusScheduled, ScheduledFor: now - 1000},
		{UserID: "u", Content: "exact", Status: models.PostStatusScheduled, ScheduledFor: now},
		{UserID: "u", Content: "future", Status: models.PostStatusScheduled, ScheduledFor: now + 60_000},
		{UserID: "u", Content: "draft", Status: models.PostStatusDraft, ScheduledFor: now - 1000},
	}
	for _, p := range seed {
		if err := s.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	published, err := s.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published != 2 {
		t.Fatalf("expected 2 published, got %d", published)
	}

	wantStatus := map[string]string{
		"due":    models.PostStatusPosted,
		"exact":  models.PostStatusPosted,
		"future": models.PostStatusScheduled,
		"draft":  models.PostStatusDraft,
	}
	for _, p := range seed {
		got, err := s.Get(ctx, p.ID.Hex())
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Status != wantStatus[p.Content] {
			t.Fatalf("post %q: expected status %s, got %s", p.Content, wantStatus[p.Content], got.Status)
		}
	}

	// A second sweep finds nothing left.
	published, err = s.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published != 0 {
		t.Fatalf("expected idempotent sweep, got %d", published)
	}
}
