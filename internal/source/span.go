package source

import "strconv"

// Span is the byte range [Start, End) of a declaration or expression in one
// registered file. Synthesised nodes carry the zero Span.
type Span struct {
	File       FileID
	Start, End uint32
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}

// String renders s as file:start-end.
func (s Span) String() string {
	b := strconv.AppendUint(nil, uint64(s.File), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(s.Start), 10)
	b = append(b, '-')
	b = strconv.AppendUint(b, uint64(s.End), 10)
	return string(b)
}

// Cover returns the smallest span holding both s and other. Spans of
// different files do not merge; s is returned as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}
