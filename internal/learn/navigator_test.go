package learn

import "testing"

func TestAdvanceRetreat(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		count       int
		wantAdvance int
		wantRetreat int
	}{
		{name: "start of list", index: 0, count: 5, wantAdvance: 1, wantRetreat: 0},
		{name: "middle", index: 2, count: 5, wantAdvance: 3, wantRetreat: 1},
		{name: "end of list", index: 4, count: 5, wantAdvance: 4, wantRetreat: 3},
		{name: "below zero", index: -3, count: 5, wantAdvance: 0, wantRetreat: 0},
		{name: "past the end", index: 12, count: 5, wantAdvance: 4, wantRetreat: 4},
		{name: "single item", index: 0, count: 1, wantAdvance: 0, wantRetreat: 0},
		{name: "empty list", index: 0, count: 0, wantAdvance: 0, wantRetreat: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Advance(tt.index, tt.count); got != tt.wantAdvance {
				t.Errorf("Advance(%d, %d) = %d, want %d", tt.index, tt.count, got, tt.wantAdvance)
			}
			if got := Retreat(tt.index, tt.count); got != tt.wantRetreat {
				t.Errorf("Retreat(%d, %d) = %d, want %d", tt.index, tt.count, got, tt.wantRetreat)
			}
		})
	}
}

func TestNavigatorStaysInBounds(t *testing.T) {
	const count = 5
	for start := -10; start <= 10; start++ {
		index := start
		for step := 0; step < 20; step++ {
			if step%3 == 0 {
				index = Retreat(index, count)
			} else {
				index = Advance(index, count)
			}
			if index < 0 || index > count-1 {
				t.Fatalf("start %d step %d: index %d out of bounds", start, step, index)
			}
		}
	}
}
