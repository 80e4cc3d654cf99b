package ai

import (
	"strings"

	"socialsync-platform/models"
)

const maxHashtags = 8

// sentimentTags seed each result with a fixed vocabulary matching the
// resolved sentiment.
var sentimentTags = map[string][]string{
	models.SentimentPositive: {"Motivation", "Success", "Inspiration", "Growth"},
	models.SentimentNegative: {"Challenge", "Learning", "Reflection", "RealTalk"},
	models.SentimentNeutral:  {"Update", "Thoughts", "Community", "Share"},
}

// genericTags are appended after keyword extraction, before the final cap.
var genericTags = []string{"SocialMedia", "AI", "Cloud"}

var stopWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {}, "that": {}, "have": {}, "i": {},
	"it": {}, "for": {}, "not": {}, "on": {}, "with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {},
	"this": {}, "but": {}, "his": {}, "by": {}, "from": {}, "they": {}, "we": {}, "say": {}, "her": {}, "she": {},
	"or": {}, "an": {}, "will": {}, "my": {}, "one": {}, "all": {}, "would": {}, "there": {}, "their": {}, "is": {},
}

// GenerateHashtags builds an ordered, deduplicated hashtag list from the text
// and its sentiment. Pure and deterministic; at most 8 tags, no '#' prefix.
func GenerateHashtags(text, sentiment string) []string {
	seed, ok := sentimentTags[sentiment]
	if !ok {
		seed = sentimentTags[models.SentimentNeutral]
	}

	tags := make([]string, 0, maxHashtags+len(genericTags))
	tags = append(tags, seed...)
	tags = append(tags, extractKeywords(text)...)
	tags = append(tags, genericTags...)

	// Dedup keep-first, then cap.
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, maxHashtags)
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxHashtags {
			break
		}
	}
	return out
}

// extractKeywords pulls up to 3 capitalized keywords from the text. Tokens
// must be longer than 4 characters raw and longer than 3 once stripped to
// alphanumerics; stop words are checked on the raw lowercase token.
func extractKeywords(text string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0, 3)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) <= 4 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		cleaned := stripNonAlnum(word)
		if len(cleaned) <= 3 {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		keywords = append(keywords, capitalize(cleaned))
		if len(keywords) == 3 {
			break
		}
	}
	return keywords
}

func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
