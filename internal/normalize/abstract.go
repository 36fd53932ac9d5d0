package normalize

import (
	"maps"
	"slices"
	"strings"
)

// maxAbstractPositions bounds the reconstructed abstract length. Positions at
// or beyond this bound are dropped rather than failing the whole record, which
// also guards against malicious payloads with absurd position values.
const maxAbstractPositions = 100_000

// reconstructAbstract rebuilds plain abstract text from the source's inverted
// index format: a mapping from each distinct word to the positions at which it
// occurs in the original text.
//
// The output length is the maximum recorded position plus one; positions with
// no recorded word stay empty so sparse or corrupt indices neither crash nor
// shift subsequent words. Word order is recovered purely from the numeric
// positions, so the result is invariant under reordering of the index entries.
func reconstructAbstract(v any) string {
	index, ok := v.(map[string]any)
	if !ok || len(index) == 0 {
		return ""
	}

	positioned := make(map[int]string, len(index))
	maxPos := -1

	// Iterate words in sorted order so duplicate positions resolve
	// deterministically regardless of map iteration order.
	for _, word := range slices.Sorted(maps.Keys(index)) {
		for _, pos := range intPositions(index[word]) {
			if pos < 0 || pos >= maxAbstractPositions {
				continue
			}
			positioned[pos] = word
			if pos > maxPos {
				maxPos = pos
			}
		}
	}

	if maxPos < 0 {
		return ""
	}

	words := make([]string, maxPos+1)
	for pos, word := range positioned {
		words[pos] = word
	}

	return strings.Join(words, " ")
}

// intPositions coerces a raw position list into ints. JSON decoding yields
// []any of float64; anything else that is not integer-like is dropped.
func intPositions(v any) []int {
	switch list := v.(type) {
	case []any:
		positions := make([]int, 0, len(list))
		for _, item := range list {
			switch n := item.(type) {
			case float64:
				positions = append(positions, int(n))
			case int:
				positions = append(positions, n)
			}
		}
		return positions
	case []int:
		return list
	case []float64:
		positions := make([]int, 0, len(list))
		for _, n := range list {
			positions = append(positions, int(n))
		}
		return positions
	default:
		return nil
	}
}
