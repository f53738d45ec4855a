package recommend

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
)

// DefaultScore stands in for a score that cannot be read as a number.
const DefaultScore = 50.0

// ScoreToDifficulty buckets a quiz score: below 50 is Easy, 50 through 75
// is Medium, above 75 is Hard.
func ScoreToDifficulty(score float64) catalog.Difficulty {
	if math.IsNaN(score) {
		score = DefaultScore
	}
	switch {
	case score < 50:
		return catalog.Easy
	case score <= 75:
		return catalog.Medium
	default:
		return catalog.Hard
	}
}

// CoerceScore reads a score from loosely typed input (JSON values, form
// fields). Anything that is not a number becomes DefaultScore.
func CoerceScore(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return DefaultScore
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return DefaultScore
		}
		f = parsed
	default:
		return DefaultScore
	}
	if math.IsNaN(f) {
		return DefaultScore
	}
	return f
}

// NormalizeInterests title-cases and trims each interest, dropping blanks
// and duplicates. Input order is kept.
func NormalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	seen := make(map[string]struct{}, len(interests))
	for _, in := range interests {
		if strings.TrimSpace(in) == "" {
			continue
		}
		n := catalog.Normalize(in)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
