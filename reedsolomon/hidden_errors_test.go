package reedsolomon_test

import (
	"errors"
	"testing"

	"github.com/ericlevine/maxigo/internal/symboltest"
	"github.com/ericlevine/maxigo/reedsolomon"
)

// syndrome evaluates word at alpha^(i+1).
func syndrome(word []int, i int) int {
	f := reedsolomon.MaxiCodeField64
	x := f.Exp(i + f.GeneratorBase())
	s := 0
	for _, v := range word {
		s = reedsolomon.Add(f.Multiply(s, x), v)
	}
	return s
}

func TestDecodeRejectsErrorsWithConstantLocator(t *testing.T) {
	positions := []int{1, 2, 3, 11, 12, 13}
	values := symboltest.HiddenErrors(20, 10, positions)

	errs := make([]int, 20)
	for i, p := range positions {
		if values[i] == 0 {
			t.Fatalf("error value %d is zero", i)
		}
		errs[p] = values[i]
	}
	low := 0
	for i := 0; i < 10; i++ {
		s := syndrome(errs, i)
		if i >= 5 && s != 0 {
			t.Fatalf("syndrome %d = %d, want 0", i, s)
		}
		if i < 5 {
			low |= s
		}
	}
	if low == 0 {
		t.Fatal("all syndromes vanish")
	}

	word := make([]int, 20)
	copy(word, []int{4, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	reedsolomon.NewEncoder(reedsolomon.MaxiCodeField64).Encode(word, 10)
	for i, v := range errs {
		word[i] = reedsolomon.Add(word[i], v)
	}
	n, err := reedsolomon.NewDecoder(reedsolomon.MaxiCodeField64).Decode(word, 10)
	if !errors.Is(err, reedsolomon.ErrUncorrectable) {
		t.Errorf("Decode = %d, %v; want ErrUncorrectable", n, err)
	}
}
