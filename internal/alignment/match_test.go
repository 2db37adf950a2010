package alignment

import "testing"

func matchedCount(match []int) int {
	n := 0
	for _, j := range match {
		if j >= 0 {
			n++
		}
	}
	return n
}

func assertIncreasing(t *testing.T, match []int) {
	t.Helper()
	last := -1
	for i, j := range match {
		if j < 0 {
			continue
		}
		if j <= last {
			t.Fatalf("match[%d] = %d not after %d", i, j, last)
		}
		last = j
	}
}

func TestLCSMatch(t *testing.T) {
	a := []rune("wethinkitisfair")
	b := []rune("wethinkumitisfair")
	match := lcsMatch(a, b)
	if got := matchedCount(match); got != len(a) {
		t.Fatalf("matched %d of %d", got, len(a))
	}
	assertIncreasing(t, match)
	if match[7] != 9 {
		t.Errorf("'i' of \"it\" matched %d, want 9", match[7])
	}
}

func TestLCSMatchEmpty(t *testing.T) {
	if got := lcsMatch(nil, []rune("abc")); len(got) != 0 {
		t.Fatalf("lcsMatch(nil) = %v", got)
	}
	got := lcsMatch([]rune("ab"), nil)
	if got[0] != -1 || got[1] != -1 {
		t.Fatalf("lcsMatch(_, nil) = %v", got)
	}
}

func TestGreedyMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "abcdef", "abcdef", 6},
		{"recognizer noise", "wethinkitisfair", "wethinkumitisfair", 15},
		{"script extra", "abxyzcd", "abcd", 4},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := greedyMatch([]rune(tt.a), []rune(tt.b), DefaultGreedyLookahead)
			if got := matchedCount(match); got != tt.want {
				t.Errorf("matched %d, want %d", got, tt.want)
			}
			assertIncreasing(t, match)
		})
	}
}

func TestLCSFits(t *testing.T) {
	if !lcsFits(2000, 3000, DefaultLCSCellLimit) {
		t.Error("6M cells should fit")
	}
	if lcsFits(2001, 3000, DefaultLCSCellLimit) {
		t.Error("over 6M cells should not fit")
	}
	if !lcsFits(0, 1<<30, DefaultLCSCellLimit) {
		t.Error("empty side should fit")
	}
}
