// Package order computes deterministic chapter sort keys.
//
// Chapters with a recognizable numeric indicator ("Chapter 3", "Unit 12",
// "Ch.4", "Lesson 2") sort first, by that number. Everything else sorts
// after them, alphabetically on the normalized title, so irregular titles
// degrade gracefully instead of breaking the whole ordering.
package order

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"
)

// SortKey is a two-tier ordering key. Tier 0 compares on Number,
// tier 1 on Text; tier 0 always precedes tier 1.
type SortKey struct {
	Tier   int
	Number int
	Text   string
}

// indicator matches a chapter-number marker on normalized (lowercased,
// whitespace-collapsed) text. The leading alternation keeps "branch 5"
// from matching "ch".
var indicator = regexp.MustCompile(`(?:^|[^a-z])(?:chapter|ch|unit|lesson)\s*\.?\s*(\d+)`)

// Normalize lowercases the title, collapses whitespace runs and trims.
func Normalize(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Compute derives the sort key for a chapter title.
func Compute(title string) SortKey {
	norm := Normalize(title)
	if m := indicator.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return SortKey{Tier: 0, Number: n}
		}
	}
	return SortKey{Tier: 1, Text: norm}
}

// Compare orders two sort keys: tier ascending, then number (tier 0) or
// normalized text (tier 1) ascending.
func Compare(a, b SortKey) int {
	if a.Tier != b.Tier {
		return cmp.Compare(a.Tier, b.Tier)
	}
	if a.Tier == 0 {
		return cmp.Compare(a.Number, b.Number)
	}
	return strings.Compare(a.Text, b.Text)
}
