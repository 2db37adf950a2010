package alignment

import "math"

// lcsMatch aligns a to b with a full longest-common-subsequence table and
// returns, for each index of a, the matched index of b or -1. The caller
// keeps len(a)*len(b) within the cell limit.
func lcsMatch(a, b []rune) []int {
	n, m := len(a), len(b)
	match := make([]int, n)
	for i := range match {
		match[i] = -1
	}
	if n == 0 || m == 0 {
		return match
	}

	// table[i*w+j] holds the LCS length of a[i:] and b[j:].
	w := m + 1
	table := make([]uint16, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		row, next := i*w, (i+1)*w
		for j := m - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				table[row+j] = table[next+j+1] + 1
			case table[next+j] >= table[row+j+1]:
				table[row+j] = table[next+j]
			default:
				table[row+j] = table[row+j+1]
			}
		}
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			match[i] = j
			i++
			j++
		case table[(i+1)*w+j] >= table[i*w+j+1]:
			i++
		default:
			j++
		}
	}
	return match
}

// lcsFits reports whether an n by m table stays within limit cells and
// within the range of the table's cell type.
func lcsFits(n, m, limit int) bool {
	if n == 0 || m == 0 {
		return true
	}
	if min(n, m) >= math.MaxUint16 {
		return false
	}
	return int64(n)*int64(m) <= int64(limit)
}

// greedyMatch walks both sequences once. On a mismatch it looks up to
// lookahead characters ahead on each side for the current character of the
// other side and takes the shorter jump, preferring to skip recognizer
// characters on a tie. With no candidate both sides advance.
func greedyMatch(a, b []rune, lookahead int) []int {
	n, m := len(a), len(b)
	match := make([]int, n)
	for i := range match {
		match[i] = -1
	}
	i, j := 0, 0
	for i < n && j < m {
		if a[i] == b[j] {
			match[i] = j
			i++
			j++
			continue
		}
		skipB := -1
		for d := 1; d <= lookahead && j+d < m; d++ {
			if b[j+d] == a[i] {
				skipB = d
				break
			}
		}
		skipA := -1
		for d := 1; d <= lookahead && i+d < n; d++ {
			if a[i+d] == b[j] {
				skipA = d
				break
			}
		}
		switch {
		case skipB > 0 && (skipA < 0 || skipB <= skipA):
			j += skipB
		case skipA > 0:
			i += skipA
		default:
			i++
			j++
		}
	}
	return match
}
