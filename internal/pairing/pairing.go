package pairing

import (
	"fmt"
	"sort"
	"sync"

	"github.com/isg32/bookpiler/internal/booktree"
)

// Policy decides when a chapter pair is complete enough to render.
type Policy int

const (
	// RequireEither accepts a pair with at least one of the two paths set.
	RequireEither Policy = iota
	// RequireBoth only accepts pairs with both paths set.
	RequireBoth
)

func (p Policy) String() string {
	if p == RequireBoth {
		return "both"
	}
	return "either"
}

// ParsePolicy maps the configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "either", "":
		return RequireEither, nil
	case "both":
		return RequireBoth, nil
	}
	return 0, fmt.Errorf("unknown pair policy %q (want either or both)", s)
}

// Index accumulates decoded files into chapter pairs. Ingestion is
// mutex-guarded so callers may decode files concurrently.
type Index struct {
	mu         sync.Mutex
	pairs      map[booktree.PairKey]*booktree.ChapterPair
	overwrites int
}

func New() *Index {
	return &Index{pairs: make(map[booktree.PairKey]*booktree.ChapterPair)}
}

// Ingest folds one FileRecord into its pair. Two files decoding to the same
// key and kind are last-write-wins.
func (ix *Index) Ingest(rec booktree.FileRecord) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	key := rec.PairKey()
	pair, ok := ix.pairs[key]
	if !ok {
		pair = &booktree.ChapterPair{Key: key}
		ix.pairs[key] = pair
	}
	switch rec.Kind {
	case booktree.KindExplanation:
		if pair.ExplanationPath != "" {
			ix.overwrites++
		}
		pair.ExplanationPath = rec.Path
	case booktree.KindQuestions:
		if pair.QuestionsPath != "" {
			ix.overwrites++
		}
		pair.QuestionsPath = rec.Path
	}
}

// Len returns the number of distinct chapter keys seen so far.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.pairs)
}

// Overwrites counts same-key-same-kind collisions, for diagnostics.
func (ix *Index) Overwrites() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.overwrites
}

// DrainComplete removes and returns all pairs complete under the policy,
// in deterministic key order regardless of ingestion order.
func (ix *Index) DrainComplete(policy Policy) []booktree.ChapterPair {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var out []booktree.ChapterPair
	for key, pair := range ix.pairs {
		if complete(pair, policy) {
			out = append(out, *pair)
			delete(ix.pairs, key)
		}
	}
	sortPairs(out)
	return out
}

// Remaining returns what a drain left behind, i.e. incomplete pairs.
func (ix *Index) Remaining() []booktree.ChapterPair {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var out []booktree.ChapterPair
	for _, pair := range ix.pairs {
		out = append(out, *pair)
	}
	sortPairs(out)
	return out
}

func complete(pair *booktree.ChapterPair, policy Policy) bool {
	if policy == RequireBoth {
		return pair.HasBoth()
	}
	return pair.HasEither()
}

func sortPairs(pairs []booktree.ChapterPair) {
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key.String() < pairs[j].Key.String()
	})
}
