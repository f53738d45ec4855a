package catalog

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Difficulty is the normalized difficulty label of a content record.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// DefaultSubjects is offered to learners when a catalog exposes no subjects.
var DefaultSubjects = []string{"Math", "Science", "History"}

// Record is one piece of educational content.
type Record struct {
	ContentID  int        `json:"content_id" yaml:"content_id"`
	Title      string     `json:"title" yaml:"title"`
	Subject    string     `json:"subject" yaml:"subject"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Type       string     `json:"type,omitempty" yaml:"type"`
	QuizLink   string     `json:"quiz_link,omitempty" yaml:"quiz_link"`
	VideoLink  string     `json:"video_link,omitempty" yaml:"video_link"`
}

// QuizURL returns the quiz link if it is renderable as a hyperlink.
func (r Record) QuizURL() string {
	return linkOrEmpty(r.QuizLink)
}

// VideoURL returns the video link if it is renderable as a hyperlink.
func (r Record) VideoURL() string {
	return linkOrEmpty(r.VideoLink)
}

func linkOrEmpty(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "http") {
		return s
	}
	return ""
}

// Catalog is an immutable, ordered collection of content records.
// It is safe for concurrent reads.
type Catalog struct {
	records     []Record
	source      string
	fingerprint string
}

// New builds a catalog from records in source order.
func New(records []Record, source string) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ContentID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ContentID)
		}
		seen[r.ContentID] = struct{}{}
	}

	owned := make([]Record, len(records))
	copy(owned, records)

	return &Catalog{
		records:     owned,
		source:      source,
		fingerprint: fingerprint(owned),
	}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Source names where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Fingerprint is a stable digest of the catalog contents.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Records returns a copy of all records in catalog order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Subjects returns the distinct subjects, sorted.
func (c *Catalog) Subjects() []string {
	set := make(map[string]struct{})
	for _, r := range c.records {
		if r.Subject != "" {
			set[r.Subject] = struct{}{}
		}
	}
	subjects := make([]string, 0, len(set))
	for s := range set {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// Take returns up to k records satisfying keep, in catalog order.
func (c *Catalog) Take(k int, keep func(Record) bool) []Record {
	out := []Record{}
	if k <= 0 {
		return out
	}
	for _, r := range c.records {
		if !keep(r) {
			continue
		}
		out = append(out, r)
		if len(out) == k {
			break
		}
	}
	return out
}

func fingerprint(records []Record) string {
	h, _ := blake2b.New256(nil)
	var id [8]byte
	for _, r := range records {
		binary.BigEndian.PutUint64(id[:], uint64(r.ContentID))
		h.Write(id[:])
		for _, f := range []string{r.Title, r.Subject, string(r.Difficulty), r.Type, r.QuizLink, r.VideoLink} {
			h.Write([]byte(f))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}
