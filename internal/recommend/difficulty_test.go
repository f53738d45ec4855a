package recommend_test

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
	"github.com/p-n-ai/pai-recommender/internal/recommend"
)

func TestScoreToDifficulty(t *testing.T) {
	tests := []struct {
		score float64
		want  catalog.Difficulty
	}{
		{-10, catalog.Easy},
		{0, catalog.Easy},
		{49.9, catalog.Easy},
		{math.Nextafter(50, 0), catalog.Easy},
		{50, catalog.Medium},
		{60, catalog.Medium},
		{75, catalog.Medium},
		{math.Nextafter(75, 100), catalog.Hard},
		{75.1, catalog.Hard},
		{100, catalog.Hard},
		{250, catalog.Hard},
		{math.Inf(1), catalog.Hard},
		{math.Inf(-1), catalog.Easy},
		{math.NaN(), catalog.Medium},
	}

	for _, tt := range tests {
		if got := recommend.ScoreToDifficulty(tt.score); got != tt.want {
			t.Errorf("ScoreToDifficulty(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreToDifficulty_Partition(t *testing.T) {
	for s := -5.0; s <= 105; s += 0.25 {
		got := recommend.ScoreToDifficulty(s)
		if got != catalog.Easy && got != catalog.Medium && got != catalog.Hard {
			t.Fatalf("ScoreToDifficulty(%v) = %q, not a bucket", s, got)
		}
	}
}

func TestCoerceScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 82.5, 82.5},
		{"int", 40, 40},
		{"int64", int64(90), 90},
		{"float32", float32(12.5), 12.5},
		{"numeric string", " 77 ", 77},
		{"json number", json.Number("49.9"), 49.9},
		{"bad json number", json.Number("x"), 50},
		{"empty string", "", 50},
		{"word", "high", 50},
		{"nan string", "NaN", 50},
		{"nil", nil, 50},
		{"bool", true, 50},
		{"slice", []int{1}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommend.CoerceScore(tt.in); got != tt.want {
				t.Errorf("CoerceScore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"mixed case", []string{"math", " SCIENCE "}, []string{"Math", "Science"}},
		{"blanks dropped", []string{"", "  ", "history"}, []string{"History"}},
		{"duplicates collapsed", []string{"Math", "math", " MATH"}, []string{"Math"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommend.NormalizeInterests(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeInterests(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
