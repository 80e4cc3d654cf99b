package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialsync-platform/models"
)

// fakePublisher applies the sweep against in-memory posts in one shot,
// mirroring the store's all-or-nothing batch.
type fakePublisher struct {
	posts []models.Post
	err   error
	calls int
}

func (f *fakePublisher) PublishDue(ctx context.Context, now int64) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}

	var published int64
	for i := range f.posts {
		if f.posts[i].Status == models.PostStatusScheduled && f.posts[i].ScheduledFor <= now {
			f.posts[i].Status = models.PostStatusPosted
			f.posts[i].UpdatedAt = now
			published++
		}
	}
	return published, nil
}

func TestSweepPublishesDuePostsInOneBatch(t *testing.T) {
	now := time.Now().UnixMilli()
	pub := &fakePublisher{posts: []models.Post{
		{Status: models.PostStatusScheduled, ScheduledFor: now - 60_000},
		{Status: models.PostStatusScheduled, ScheduledFor: now - 120_000},
		{Status: models.PostStatusScheduled, ScheduledFor: now + 3_600_000},
		{Status: models.PostStatusDraft, ScheduledFor: now - 60_000},
	}}

	s := New(pub, nil)
	count, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 published, got %d", count)
	}
	if pub.calls != 1 {
		t.Fatalf("expected a single batch call, got %d", pub.calls)
	}

	if pub.posts[0].Status != models.PostStatusPosted || pub.posts[1].Status != models.PostStatusPosted {
		t.Fatal("due posts should be posted")
	}
	if pub.posts[2].Status != models.PostStatusScheduled {
		t.Fatal("future post should stay scheduled")
	}
	if pub.posts[3].Status != models.PostStatusDraft {
		t.Fatal("drafts are never swept")
	}
}

func TestSweepIdempotent(t *testing.T) {
	now := time.Now().UnixMilli()
	pub := &fakePublisher{posts: []models.Post{
		{Status: models.PostStatusScheduled, ScheduledFor: now - 10_000},
	}}

	s := New(pub, nil)

	first, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected 1 published on first sweep, got %d", first)
	}

	second, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected no-op second sweep, got %d", second)
	}
}

func TestSweepNeverRevertsPostedStatus(t *testing.T) {
	now := time.Now().UnixMilli()
	pub := &fakePublisher{posts: []models.Post{
		{Status: models.PostStatusPosted, ScheduledFor: now - 10_000},
	}}

	s := New(pub, nil)
	for i := 0; i < 3; i++ {
		if _, err := s.Sweep(context.Background()); err != nil {
			t.Fatalf("sweep %d failed: %v", i, err)
		}
		if pub.posts[0].Status != models.PostStatusPosted {
			t.Fatalf("posted status reverted on sweep %d", i)
		}
	}
}

func TestSweepPropagatesStoreFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("store unavailable")}

	s := New(pub, nil)
	if _, err := s.Sweep(context.Background()); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}
