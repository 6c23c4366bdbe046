// Package fieldpath parses dotted/bracketed field paths.
//
// Grammar:
//
//	path    = segment { "." segment }
//	segment = name | name "[" index "]"
//	index   = digit { digit } | "*"
//
// "*" is the append marker and is only meaningful when writing. Segments that
// do not match the bracket form exactly (for example "a[x]", "a[1" or
// "a[0][1]") are kept as literal names; they are not rejected here and simply
// fail to resolve later.
package fieldpath

import (
	"strconv"
	"strings"
)

// NoIndex marks a segment without a bracket suffix.
const NoIndex = -1

// Segment is one dot-separated element of a Path.
type Segment struct {
	Name   string
	Index  int  // NoIndex when the segment has no explicit index
	Append bool // "[*]"
}

// Indexed reports whether the segment addresses a collection element or the
// append position.
func (s Segment) Indexed() bool { return s.Append || s.Index != NoIndex }

// String renders the segment in path syntax.
func (s Segment) String() string {
	switch {
	case s.Append:
		return s.Name + "[*]"
	case s.Index != NoIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Name
	}
}

// Path is an ordered sequence of segments.
type Path []Segment

// Parse splits p into segments. It never fails.
func Parse(p string) Path {
	parts := strings.Split(p, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		out = append(out, parseSegment(part))
	}
	return out
}

func parseSegment(s string) Segment {
	seg := Segment{Name: s, Index: NoIndex}
	open := strings.IndexByte(s, '[')
	if open < 0 || !strings.HasSuffix(s, "]") {
		return seg
	}
	inner := s[open+1 : len(s)-1]
	if inner == "*" {
		return Segment{Name: s[:open], Index: NoIndex, Append: true}
	}
	if inner == "" {
		return seg
	}
	for i := 0; i < len(inner); i++ {
		if inner[i] < '0' || inner[i] > '9' {
			return seg
		}
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		// overflow
		return seg
	}
	return Segment{Name: s[:open], Index: n}
}

// String renders the path back into its textual form.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// HasIndex reports whether any segment carries an index or append marker.
func (p Path) HasIndex() bool {
	for _, s := range p {
		if s.Indexed() {
			return true
		}
	}
	return false
}

// HasAppend reports whether any segment carries the append marker.
func (p Path) HasAppend() bool {
	for _, s := range p {
		if s.Append {
			return true
		}
	}
	return false
}

// Last returns the terminal segment. Parse never produces an empty Path.
func (p Path) Last() Segment { return p[len(p)-1] }

// Parent returns every segment but the last.
func (p Path) Parent() Path { return p[:len(p)-1] }

// Prefix returns the textual path made of the first n segments.
func (p Path) Prefix(n int) string { return p[:n].String() }
