package catalog_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
)

func TestNew_Validation(t *testing.T) {
	if _, err := catalog.New(nil, "x"); !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Errorf("New(nil) error = %v, want ErrEmptyCatalog", err)
	}

	dup := []catalog.Record{{ContentID: 1, Title: "A"}, {ContentID: 1, Title: "B"}}
	if _, err := catalog.New(dup, "x"); !errors.Is(err, catalog.ErrDuplicateID) {
		t.Errorf("New(dup) error = %v, want ErrDuplicateID", err)
	}
}

func TestCatalog_IsImmutable(t *testing.T) {
	records := []catalog.Record{{ContentID: 1, Title: "A", Subject: "Math", Difficulty: catalog.Easy}}
	c, err := catalog.New(records, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records[0].Title = "changed"
	got := c.Records()
	got[0].Subject = "changed"

	if again := c.Records(); again[0].Title != "A" || again[0].Subject != "Math" {
		t.Errorf("catalog mutated through caller slices: %+v", again[0])
	}
}

func TestCatalog_Subjects(t *testing.T) {
	got := catalog.Sample().Subjects()
	want := []string{"History", "Math", "Science"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subjects() = %v, want %v", got, want)
	}
}

func TestCatalog_Take(t *testing.T) {
	c := catalog.Sample()
	isMath := func(r catalog.Record) bool { return r.Subject == "Math" }

	tests := []struct {
		name    string
		k       int
		wantIDs []int
	}{
		{"all", 100, []int{1, 2, 6, 9, 12, 15, 18}},
		{"prefix", 3, []int{1, 2, 6}},
		{"zero", 0, []int{}},
		{"negative", -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Take(tt.k, isMath)
			ids := make([]int, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ContentID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Take(%d) ids = %v, want %v", tt.k, ids, tt.wantIDs)
			}
			if got == nil {
				t.Error("Take() returned nil, want empty slice")
			}
		})
	}
}

func TestCatalog_Fingerprint(t *testing.T) {
	a := catalog.Sample()
	b := catalog.Sample()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical catalogs have different fingerprints")
	}

	records := a.Records()
	records[0].Title = "Algebra Basics II"
	changed, err := catalog.New(records, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if changed.Fingerprint() == a.Fingerprint() {
		t.Error("fingerprint did not change with content")
	}
}

func TestRecord_Links(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://example.com/quiz", "https://example.com/quiz"},
		{"http://example.com/quiz", "http://example.com/quiz"},
		{"  https://example.com/x ", "https://example.com/x"},
		{"ftp://example.com", ""},
		{"", ""},
		{"nan", ""},
	}

	for _, tt := range tests {
		r := catalog.Record{QuizLink: tt.link, VideoLink: tt.link}
		if got := r.QuizURL(); got != tt.want {
			t.Errorf("QuizURL(%q) = %q, want %q", tt.link, got, tt.want)
		}
		if got := r.VideoURL(); got != tt.want {
			t.Errorf("VideoURL(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	c := catalog.Sample()
	if c.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", c.Len())
	}

	counts := map[catalog.Difficulty]int{}
	for _, r := range c.Records() {
		counts[r.Difficulty]++
	}
	if counts[catalog.Easy] != 6 || counts[catalog.Medium] != 9 || counts[catalog.Hard] != 5 {
		t.Errorf("difficulty counts = %v", counts)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"math", "Math"},
		{" SCIENCE ", "Science"},
		{"world history", "World History"},
		{"\tHistory\n", "History"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := catalog.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := catalog.NormalizeDifficulty("mEdIuM"); got != catalog.Medium {
		t.Errorf("NormalizeDifficulty() = %q, want Medium", got)
	}
}
