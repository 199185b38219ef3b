// Package glob implements the wildcard pattern matching used for command
// arguments (add, rm) and ignore patterns in glob mode.
package glob

// Match reports whether pattern matches s in full. '?' matches exactly one
// character and '*' matches zero or more characters, including across path
// separators.
//
// The scan is a backtracking two-pointer walk: on '*' the current positions
// are checkpointed and the pattern cursor advances; a later mismatch rewinds
// to the checkpoint, consuming one more character of s each time.
func Match(pattern, s string) bool {
	var pi, si int
	starPi, starSi := -1, -1

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			starPi, starSi = pi, si
			pi++
		case starPi >= 0:
			pi = starPi + 1
			starSi++
			si = starSi
		default:
			return false
		}
	}

	// Trailing stars match the empty remainder.
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
