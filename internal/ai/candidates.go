package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"socialsync-platform/models"
)

// Candidate is one {label, score} pair from a text-classification model. All
// response-shape sniffing (flat vs nested arrays, 0-100 vs 0-1 scores,
// enumerated vs textual labels) is confined to this file.
type Candidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// decodeCandidates normalizes an inference API response body to a flat
// candidate list. Models return either [{label,score},...] or a nested
// single-element [[{label,score},...]] depending on the pipeline.
func decodeCandidates(body []byte) ([]Candidate, error) {
	var nested [][]Candidate
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("empty classification response")
		}
		return nested[0], nil
	}

	var flat []Candidate
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %v", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("empty classification response")
	}
	return flat, nil
}

// bestCandidate returns the candidate with the highest score. Ties keep the
// first-seen candidate (strict > comparison).
func bestCandidate(candidates []Candidate) Candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// mapLabel maps a raw model label to one of the three sentiment values.
// Textual labels win over the enumerated label_N fallback used by models
// that don't name their classes.
func mapLabel(raw string) string {
	label := strings.ToLower(raw)

	switch {
	case strings.Contains(label, "positive"):
		return models.SentimentPositive
	case strings.Contains(label, "negative"):
		return models.SentimentNegative
	case strings.Contains(label, "neutral"):
		return models.SentimentNeutral
	}

	switch label {
	case "label_2", "2":
		return models.SentimentPositive
	case "label_0", "0":
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}

func isPositiveLabel(raw string) bool {
	label := strings.ToLower(raw)
	return strings.Contains(label, "positive") || label == "label_1" || label == "1"
}

func isNegativeLabel(raw string) bool {
	label := strings.ToLower(raw)
	return strings.Contains(label, "negative") || label == "label_0" || label == "0"
}

// normalizeScore rescales percentage-style scores to [0,1] and rounds to
// 4 decimal places.
func normalizeScore(score float64) float64 {
	if score > 1 {
		score = score / 100
	}
	return math.Round(score*10000) / 10000
}
