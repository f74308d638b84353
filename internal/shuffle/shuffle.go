// Package shuffle provides Fisher–Yates shuffling for featured-item
// selections.
package shuffle

import "math/rand"

// Slice shuffles items in place and returns the same slice. Callers that
// need the original order must copy first.
func Slice[T any](items []T) []T {
	return shuffleWith(items, rand.Intn)
}

// SeededSlice shuffles items in place using a deterministic source, so a
// "random" featured ordering stays stable for a whole session or fetch
// instead of changing on every render.
func SeededSlice[T any](seed int64, items []T) []T {
	rng := rand.New(rand.NewSource(seed))
	return shuffleWith(items, rng.Intn)
}

func shuffleWith[T any](items []T, intn func(int) int) []T {
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}
