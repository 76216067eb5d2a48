package order

import (
	"regexp"
	"strconv"
	"strings"
)

// chunker splits a string into maximal digit and non-digit runs.
var chunker = regexp.MustCompile(`(\d+|\D+)`)

type chunk struct {
	text    string
	num     int
	numeric bool
}

func chunks(s string) []chunk {
	parts := chunker.FindAllString(s, -1)
	out := make([]chunk, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out[i] = chunk{num: n, numeric: true}
		} else {
			out[i] = chunk{text: strings.ToLower(p)}
		}
	}
	return out
}

// NaturalLess compares two strings so that embedded numbers compare
// numerically: "Class 2" sorts before "Class 10". Used for folder and
// output listings, and as the degraded ordering over raw chapter keys
// when no chapter text is extractable at all.
func NaturalLess(a, b string) bool {
	ca, cb := chunks(a), chunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		switch {
		case x.numeric && !y.numeric:
			return true
		case !x.numeric && y.numeric:
			return false
		case x.numeric:
			if x.num != y.num {
				return x.num < y.num
			}
		default:
			if x.text != y.text {
				return x.text < y.text
			}
		}
	}
	return len(ca) < len(cb)
}
