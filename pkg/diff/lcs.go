// Package diff implements the line diff engine: a dynamic-programming
// longest-common-subsequence core and an edit-script walk over it.
package diff

// LCS computes the longest common subsequence of a and b and returns the
// ascending indices into a of the elements that participate.
//
// The table is the standard O(len(a)*len(b)) recurrence: equal last elements
// extend the diagonal, otherwise the cell takes the larger neighbor. The
// backtrack takes the diagonal on equal elements and otherwise steps toward
// the larger neighbor, breaking ties by consuming a.
func LCS(a, b []string) []int {
	m, n := len(a), len(b)

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	idx := make([]int, 0, table[m][n])
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			idx = append(idx, i-1)
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}

	// Built in reverse during backtrack.
	for lo, hi := 0, len(idx)-1; lo < hi; lo, hi = lo+1, hi-1 {
		idx[lo], idx[hi] = idx[hi], idx[lo]
	}
	return idx
}
