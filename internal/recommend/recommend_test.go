package recommend_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
	"github.com/p-n-ai/pai-recommender/internal/recommend"
)

func titles(records []catalog.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func TestRecommend_Sample(t *testing.T) {
	c := catalog.Sample()

	tests := []struct {
		name       string
		interests  []string
		score      float64
		topK       int
		wantDiff   catalog.Difficulty
		wantTier   recommend.Tier
		wantTitles []string
	}{
		{
			name:       "math hard",
			interests:  []string{"Math"},
			score:      90,
			topK:       10,
			wantDiff:   catalog.Hard,
			wantTier:   recommend.TierInterestDifficulty,
			wantTitles: []string{"Advanced Geometry", "Quadratic Equations"},
		},
		{
			name:       "history easy",
			interests:  []string{"History"},
			score:      10,
			topK:       10,
			wantDiff:   catalog.Easy,
			wantTier:   recommend.TierInterestDifficulty,
			wantTitles: []string{"Medieval India"},
		},
		{
			name:      "no interests medium",
			interests: nil,
			score:     60,
			topK:      10,
			wantDiff:  catalog.Medium,
			wantTier:  recommend.TierDifficulty,
			wantTitles: []string{
				"Human Body Systems", "World War II Overview", "Linear Equations",
				"Probability Intro", "Periodic Table", "Renaissance Art",
				"Genetics Basics", "Coordinate Geometry", "Constitution of India",
			},
		},
		{
			name:       "no interests truncated",
			interests:  []string{"", "  "},
			score:      60,
			topK:       2,
			wantDiff:   catalog.Medium,
			wantTier:   recommend.TierDifficulty,
			wantTitles: []string{"Human Body Systems", "World War II Overview"},
		},
		{
			name:       "two subjects in catalog order",
			interests:  []string{"Science", "Math"},
			score:      20,
			topK:       10,
			wantDiff:   catalog.Easy,
			wantTier:   recommend.TierInterestDifficulty,
			wantTitles: []string{"Algebra Basics", "Photosynthesis Basics", "Cell Structure", "Fractions & Decimals", "Acids and Bases"},
		},
		{
			name:       "unknown subject falls back to difficulty",
			interests:  []string{"Art"},
			score:      80,
			topK:       10,
			wantDiff:   catalog.Hard,
			wantTier:   recommend.TierDifficultyFallback,
			wantTitles: []string{"Advanced Geometry", "Indian Independence", "Quadratic Equations", "Ecosystems", "Modern World Conflicts"},
		},
		{
			name:       "zero top_k",
			interests:  []string{"Math"},
			score:      90,
			topK:       0,
			wantDiff:   catalog.Hard,
			wantTier:   recommend.TierNone,
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := recommend.Recommend(c, tt.interests, tt.score, tt.topK)
			if res.Difficulty != tt.wantDiff {
				t.Errorf("Difficulty = %q, want %q", res.Difficulty, tt.wantDiff)
			}
			if res.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", res.Tier, tt.wantTier)
			}
			if got := titles(res.Records); !reflect.DeepEqual(got, tt.wantTitles) {
				t.Errorf("titles = %q, want %q", got, tt.wantTitles)
			}
		})
	}
}

func TestRecommend_RelaxesDifficulty(t *testing.T) {
	c, err := catalog.New([]catalog.Record{
		{ContentID: 1, Title: "Easy Math", Subject: "Math", Difficulty: catalog.Easy},
		{ContentID: 2, Title: "Hard History", Subject: "History", Difficulty: catalog.Hard},
		{ContentID: 3, Title: "Medium History", Subject: "History", Difficulty: catalog.Medium},
		{ContentID: 4, Title: "Easy Science", Subject: "Science", Difficulty: catalog.Easy},
	}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res := recommend.Recommend(c, []string{"history"}, 10, 10)
	if res.Tier != recommend.TierInterestAny {
		t.Errorf("Tier = %v, want %v", res.Tier, recommend.TierInterestAny)
	}
	want := []string{"Hard History", "Medium History"}
	if got := titles(res.Records); !reflect.DeepEqual(got, want) {
		t.Errorf("titles = %q, want %q", got, want)
	}
}

func TestRecommend_EmptyResult(t *testing.T) {
	c, err := catalog.New([]catalog.Record{
		{ContentID: 1, Title: "Easy Math", Subject: "Math", Difficulty: catalog.Easy},
	}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, interests := range [][]string{nil, {"Art"}} {
		res := recommend.Recommend(c, interests, 95, 10)
		if res.Tier != recommend.TierNone {
			t.Errorf("interests %q: Tier = %v, want none", interests, res.Tier)
		}
		if res.Records == nil || len(res.Records) != 0 {
			t.Errorf("interests %q: Records = %v, want empty non-nil", interests, res.Records)
		}
	}
}

func TestRecommend_NormalizedInterestsMatch(t *testing.T) {
	c := catalog.Sample()
	a := recommend.Recommend(c, []string{"math", " SCIENCE "}, 60, 10)
	b := recommend.Recommend(c, []string{"Math", "Science"}, 60, 10)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalized interests differ:\n%+v\n%+v", a, b)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	c := catalog.Sample()
	first := recommend.Recommend(c, []string{"History", "Math"}, 70, 4)
	for i := 0; i < 5; i++ {
		if again := recommend.Recommend(c, []string{"History", "Math"}, 70, 4); !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestRecommend_BoundedByTopK(t *testing.T) {
	c := catalog.Sample()
	for k := -2; k <= 25; k++ {
		for _, interests := range [][]string{nil, {"Math"}, {"Art"}, {"History", "Science"}} {
			res := recommend.Recommend(c, interests, 55, k)
			limit := k
			if limit < 0 {
				limit = 0
			}
			if len(res.Records) > limit {
				t.Fatalf("k=%d interests=%q: len = %d", k, interests, len(res.Records))
			}
		}
	}
}

func TestRecommend_NilCatalog(t *testing.T) {
	res := recommend.Recommend(nil, []string{"Math"}, 60, 10)
	if res.Tier != recommend.TierNone || len(res.Records) != 0 {
		t.Errorf("Recommend(nil) = %+v, want empty", res)
	}
}

func TestTier_JSON(t *testing.T) {
	data, err := json.Marshal(recommend.Result{Tier: recommend.TierInterestAny, Records: []catalog.Record{}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got recommend.Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Tier != recommend.TierInterestAny {
		t.Errorf("Tier = %v, want %v", got.Tier, recommend.TierInterestAny)
	}

	var bad recommend.Tier
	if err := bad.UnmarshalText([]byte("best")); err == nil {
		t.Error("UnmarshalText(best) should error")
	}
}
