package quiz

import (
	"slices"
	"strings"
	"testing"
)

// scriptedSource replays fixed draws, then returns 0
type scriptedSource struct {
	draws []int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func TestShuffleIsPermutation(t *testing.T) {
	input := []string{"🔴", "🔵", "🟢", "🟡", "⚫"}
	original := slices.Clone(input)

	for seed := int64(0); seed < 200; seed++ {
		out := Shuffle(NewSource(seed), input)
		if len(out) != len(input) {
			t.Fatalf("seed %d: got %d elements, want %d", seed, len(out), len(input))
		}
		sorted := slices.Clone(out)
		slices.Sort(sorted)
		want := slices.Clone(original)
		slices.Sort(want)
		if !slices.Equal(sorted, want) {
			t.Fatalf("seed %d: %v is not a permutation of %v", seed, out, original)
		}
	}

	if !slices.Equal(input, original) {
		t.Errorf("Shuffle mutated its input: %v", input)
	}
}

func TestShuffleShortInputs(t *testing.T) {
	tests := []struct {
		name  string
		input []int
	}{
		{name: "nil", input: nil},
		{name: "empty", input: []int{}},
		{name: "single", input: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Shuffle(NewSource(1), tt.input)
			if !slices.Equal(out, tt.input) {
				t.Errorf("Shuffle(%v) = %v, want unchanged", tt.input, out)
			}
		})
	}
}

func TestShuffleScriptedDraws(t *testing.T) {
	tests := []struct {
		name     string
		draws    []int
		expected []string
	}{
		{
			name:     "identity draws",
			draws:    []int{2, 1},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "always first",
			draws:    []int{0, 0},
			expected: []string{"b", "c", "a"},
		},
		{
			name:     "swap last two",
			draws:    []int{1, 1},
			expected: []string{"a", "c", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Shuffle(&scriptedSource{draws: tt.draws}, []string{"a", "b", "c"})
			if !slices.Equal(out, tt.expected) {
				t.Errorf("Shuffle() = %v, want %v", out, tt.expected)
			}
		})
	}
}

func TestShuffleUniformDistribution(t *testing.T) {
	const trials = 60000
	src := NewSource(42)
	counts := make(map[string]int)

	for i := 0; i < trials; i++ {
		out := Shuffle(src, []string{"a", "b", "c"})
		counts[strings.Join(out, "")]++
	}

	if len(counts) != 6 {
		t.Fatalf("expected all 6 permutations, got %d: %v", len(counts), counts)
	}

	expected := trials / 6
	for perm, n := range counts {
		if n < expected*9/10 || n > expected*11/10 {
			t.Errorf("permutation %s drawn %d times, expected about %d", perm, n, expected)
		}
	}
}
