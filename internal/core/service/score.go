package service

import (
	"math"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// Score computes the similarity score between two answer maps.
// The result is an integer in [0, 100].
//
// Every key of a that is also present in b is considered; keys present
// on one side only are ignored. Per considered key, both values are
// coerced to sequences and the common values are counted under set
// semantics (duplicates never double-count, order is irrelevant). A key
// with at least one common value contributes |common| / max(|seqA|,
// |seqB|); a key with none contributes zero but is still considered.
// The score is round(100 * total / considered), or 0 when no key was
// considered.
//
// Malformed input never fails: empty sequences and empty maps simply
// contribute nothing.
func Score(a, b map[string]domain.AnswerValue) int {
	considered := 0
	total := 0.0

	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			continue
		}
		considered++

		aItems := av.Items()
		bItems := bv.Items()

		common := countCommon(aItems, bItems)
		if common == 0 {
			continue
		}

		longest := len(aItems)
		if len(bItems) > longest {
			longest = len(bItems)
		}
		total += float64(common) / float64(longest)
	}

	if considered == 0 {
		return 0
	}
	return int(math.Round(100 * total / float64(considered)))
}

// countCommon counts the distinct values present in both sequences.
func countCommon(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	count := 0
	for _, v := range a {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := inB[v]; ok {
			count++
		}
	}
	return count
}
