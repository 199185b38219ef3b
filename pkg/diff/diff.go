package diff

import (
	"fmt"
	"strings"
)

// OpType classifies a line in an edit script.
type OpType int

const (
	Context  OpType = iota // line present in both sequences
	Removal                // line present in a only
	Addition               // line present in b only
)

// Line is a single operation in the edit script produced by Lines.
type Line struct {
	Type OpType
	Text string
}

// Options controls diff rendering. ContextLines is accepted for interface
// compatibility but does not narrow output; the full diff is always shown.
type Options struct {
	ContextLines  int
	GeneratePatch bool
}

// Lines computes the line-level edit script between a and b.
//
// The walk advances both sequences together with the LCS checkpoints:
// elements of a before the next checkpoint are removals, elements of b
// before the checkpoint's value are additions, and the checkpoint itself
// is a context line.
func Lines(a, b []string) []Line {
	idx := LCS(a, b)

	var out []Line
	i, j := 0, 0
	for _, ai := range idx {
		for i < ai {
			out = append(out, Line{Type: Removal, Text: a[i]})
			i++
		}
		for j < len(b) && b[j] != a[ai] {
			out = append(out, Line{Type: Addition, Text: b[j]})
			j++
		}
		out = append(out, Line{Type: Context, Text: a[ai]})
		i++
		j++
	}
	for i < len(a) {
		out = append(out, Line{Type: Removal, Text: a[i]})
		i++
	}
	for j < len(b) {
		out = append(out, Line{Type: Addition, Text: b[j]})
		j++
	}
	return out
}

// Format renders an edit script. Context lines appear only when
// GeneratePatch is set, and the two-line file header naming both sides is
// appended after the body.
func Format(script []Line, name1, name2 string, opts Options) string {
	var sb strings.Builder

	for _, l := range script {
		switch l.Type {
		case Removal:
			fmt.Fprintf(&sb, "-%s\n", l.Text)
		case Addition:
			fmt.Fprintf(&sb, "+%s\n", l.Text)
		case Context:
			if opts.GeneratePatch {
				fmt.Fprintf(&sb, " %s\n", l.Text)
			}
		}
	}

	if opts.GeneratePatch {
		fmt.Fprintf(&sb, "--- %s\n", name1)
		fmt.Fprintf(&sb, "+++ %s\n", name2)
	}

	return sb.String()
}

// SplitLines splits content into lines. A trailing newline does not produce
// an extra empty element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
