package analytics

import (
	"fmt"
	"sort"
	"time"

	"socialsync-platform/models"
)

const (
	weekMillis  = 7 * 24 * 60 * 60 * 1000
	weekBuckets = 8
	topTagLimit = 10
)

// Aggregate derives the analytics summary from one user's posts. Pure
// function over an in-memory snapshot; recomputed from scratch on every
// request. The location pins week labels and the hour-of-day histogram to a
// single timezone so results do not depend on server environment.
func Aggregate(posts []models.Post, now time.Time, loc *time.Location) models.Analytics {
	if loc == nil {
		loc = time.UTC
	}

	analytics := models.Analytics{
		TotalPosts:   len(posts),
		TopHashtags:  topHashtags(posts),
		PostsPerWeek: postsPerWeek(posts, now, loc),
		PostingTimes: postingTimes(posts, loc),
	}

	for _, p := range posts {
		switch p.Sentiment {
		case models.SentimentPositive:
			analytics.PositivePosts++
		case models.SentimentNegative:
			analytics.NegativePosts++
		default:
			analytics.NeutralPosts++
		}
	}

	return analytics
}

// topHashtags counts one occurrence per post per tag and returns the ten most
// frequent, most frequent first. Ties order by tag for determinism.
func topHashtags(posts []models.Post) []models.HashtagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, tag := range p.Hashtags {
			counts[tag]++
		}
	}

	tags := make([]models.HashtagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, models.HashtagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > topTagLimit {
		tags = tags[:topTagLimit]
	}
	return tags
}

// postsPerWeek builds 8 fixed-width weekly buckets covering [now-8w, now),
// oldest first, each labeled with its start date as M/D.
func postsPerWeek(posts []models.Post, now time.Time, loc *time.Location) []models.WeekCount {
	nowMs := now.UnixMilli()

	weeks := make([]models.WeekCount, 0, weekBuckets)
	for i := 0; i < weekBuckets; i++ {
		weekStart := nowMs - int64(weekBuckets-i)*weekMillis
		weekEnd := weekStart + weekMillis

		count := 0
		for _, p := range posts {
			if p.ScheduledFor >= weekStart && p.ScheduledFor < weekEnd {
				count++
			}
		}

		start := time.UnixMilli(weekStart).In(loc)
		weeks = append(weeks, models.WeekCount{
			Week:  fmt.Sprintf("%d/%d", int(start.Month()), start.Day()),
			Count: count,
		})
	}
	return weeks
}

// postingTimes counts posts per hour-of-day of their scheduled time. Hours
// with zero posts are omitted (sparse representation).
func postingTimes(posts []models.Post, loc *time.Location) []models.HourCount {
	counts := [24]int{}
	for _, p := range posts {
		hour := time.UnixMilli(p.ScheduledFor).In(loc).Hour()
		counts[hour]++
	}

	hours := make([]models.HourCount, 0, 24)
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		hours = append(hours, models.HourCount{Hour: hour, Count: counts[hour]})
	}
	return hours
}
