package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses. A post is born "posted" when its scheduled time is already
// in the past at creation; otherwise it waits for the scheduler sweep.
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPosted    = "posted"
)

// Sentiment labels assigned by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Post is the central entity: a piece of content scheduled for publication.
// Timestamps are epoch milliseconds to keep parity with client-side Date.now().
type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"userId"`
	Content        string             `bson:"content" json:"content"`
	Hashtags       []string           `bson:"hashtags" json:"hashtags"`
	Sentiment      string             `bson:"sentiment" json:"sentiment"`
	SentimentScore float64            `bson:"sentiment_score" json:"sentimentScore"`
	ScheduledFor   int64              `bson:"scheduled_for" json:"scheduledFor"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      int64              `bson:"created_at" json:"createdAt"`
	UpdatedAt      int64              `bson:"updated_at" json:"updatedAt"`
}

// CreatePostRequest is the client payload for post creation. The owner is
// always taken from the verified credential, never from the payload, so there
// is deliberately no user field here.
type CreatePostRequest struct {
	Content        string   `json:"content" binding:"required"`
	Hashtags       []string `json:"hashtags"`
	Sentiment      string   `json:"sentiment" binding:"required,oneof=positive neutral negative"`
	SentimentScore float64  `json:"sentimentScore" binding:"min=0,max=1"`
	ScheduledFor   int64    `json:"scheduledFor" binding:"required"`
	// Clients may save a draft or schedule directly; "posted" is never
	// accepted from a payload, only derived server-side.
	Status string `json:"status" binding:"omitempty,oneof=draft scheduled"`
}

// AIAnalysis is the transient result of one classification request.
type AIAnalysis struct {
	Sentiment         string   `json:"sentiment"`
	SentimentScore    float64  `json:"sentimentScore"`
	SuggestedHashtags []string `json:"suggestedHashtags"`
}

// AnalyzeRequest is the payload for the sentiment analysis endpoint.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analytics is derived from a user's posts on every request; nothing here is
// persisted or cached.
type Analytics struct {
	TotalPosts    int            `json:"totalPosts"`
	PositivePosts int            `json:"positivePosts"`
	NeutralPosts  int            `json:"neutralPosts"`
	NegativePosts int            `json:"negativePosts"`
	TopHashtags   []HashtagCount `json:"topHashtags"`
	PostsPerWeek  []WeekCount    `json:"postsPerWeek"`
	PostingTimes  []HourCount    `json:"postingTimes"`
}

type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}
