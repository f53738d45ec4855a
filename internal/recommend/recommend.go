// Package recommend selects catalog content for a learner from their subject
// interests and last quiz score.
package recommend

import (
	"fmt"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
)

// DefaultTopK bounds a result when the caller does not choose a size.
const DefaultTopK = 10

// Tier identifies which step of the fallback ladder produced a result.
type Tier int

const (
	TierNone               Tier = iota // nothing matched
	TierDifficulty                     // no interests: difficulty only
	TierInterestDifficulty             // interests and difficulty
	TierInterestAny                    // interests, any difficulty
	TierDifficultyFallback             // no subject matched: difficulty only
)

var tierNames = map[Tier]string{
	TierNone:               "none",
	TierDifficulty:         "difficulty",
	TierInterestDifficulty: "interest_difficulty",
	TierInterestAny:        "interest_any_difficulty",
	TierDifficultyFallback: "difficulty_fallback",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for k, v := range tierNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

// Result is an ordered subsequence of the catalog.
type Result struct {
	Difficulty catalog.Difficulty `json:"difficulty"`
	Tier       Tier               `json:"tier"`
	Records    []catalog.Record   `json:"records"`
}

// Recommend returns at most topK records from c, in catalog order.
//
// Without interests it returns records at the score's difficulty. With
// interests it tries subject and difficulty together, then the subjects at
// any difficulty, then the difficulty alone. An empty result is valid.
func Recommend(c *catalog.Catalog, interests []string, score float64, topK int) Result {
	difficulty := ScoreToDifficulty(score)
	res := Result{Difficulty: difficulty, Tier: TierNone, Records: []catalog.Record{}}
	if c == nil || topK <= 0 {
		return res
	}

	atDifficulty := func(r catalog.Record) bool { return r.Difficulty == difficulty }

	subjects := NormalizeInterests(interests)
	if len(subjects) == 0 {
		return take(res, c, topK, TierDifficulty, atDifficulty)
	}

	wanted := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		wanted[s] = struct{}{}
	}
	inSubjects := func(r catalog.Record) bool {
		_, ok := wanted[r.Subject]
		return ok
	}

	if res = take(res, c, topK, TierInterestDifficulty, func(r catalog.Record) bool {
		return inSubjects(r) && atDifficulty(r)
	}); res.Tier != TierNone {
		return res
	}
	if res = take(res, c, topK, TierInterestAny, inSubjects); res.Tier != TierNone {
		return res
	}
	return take(res, c, topK, TierDifficultyFallback, atDifficulty)
}

func take(res Result, c *catalog.Catalog, k int, tier Tier, keep func(catalog.Record) bool) Result {
	records := c.Take(k, keep)
	if len(records) == 0 {
		res.Tier = TierNone
		res.Records = []catalog.Record{}
		return res
	}
	res.Tier = tier
	res.Records = records
	return res
}
