package shuffle

import (
	"reflect"
	"sort"
	"testing"
)

func TestSlice_MutatesInPlaceAndKeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := Slice(items)

	// Same backing array: mutating the result is visible in the input.
	got[0] = 99
	if items[0] != 99 {
		t.Fatalf("expected in-place shuffle sharing the backing array")
	}
	got[0] = 1

	sorted := append([]int(nil), got...)
	sort.Ints(sorted)
	if !reflect.DeepEqual(sorted, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("shuffle lost or duplicated elements: %v", got)
	}
}

func TestSeededSlice_Deterministic(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "b", "c", "d", "e"}

	SeededSlice(42, a)
	SeededSlice(42, b)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed must produce the same order: %v vs %v", a, b)
	}

	c := []string{"a", "b", "c", "d", "e"}
	SeededSlice(43, c)
	d := []string{"a", "b", "c", "d", "e"}
	SeededSlice(44, d)
	if reflect.DeepEqual(c, d) && reflect.DeepEqual(c, a) {
		t.Fatalf("different seeds unexpectedly agree on the same order")
	}
}

func TestSlice_SmallInputs(t *testing.T) {
	if got := Slice([]int{}); len(got) != 0 {
		t.Fatalf("empty slice should stay empty")
	}
	if got := Slice([]int{7}); got[0] != 7 {
		t.Fatalf("single element must be untouched")
	}
}
