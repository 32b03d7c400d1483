// Package keys holds the relative key catalogue the game draws from.
package keys

import "slices"

// Pair is a major key and the minor key sharing its signature.
type Pair struct {
	Major string
	Minor string
}

// Mode decides which side of a pair is dragged.
type Mode string

const (
	MajorToMinor Mode = "major-to-minor"
	MinorToMajor Mode = "minor-to-major"
)

// Source decides whether the whole catalogue or a chosen subset is used.
type Source string

const (
	SourceAll      Source = "all"
	SourceSelected Source = "selected"
)

// Difficulty maps to the number of pairs in a round.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var all = []Pair{
	{Major: "C", Minor: "A"},
	{Major: "G", Minor: "E"},
	{Major: "D", Minor: "B"},
	{Major: "A", Minor: "F♯"},
	{Major: "E", Minor: "C♯"},
	{Major: "B", Minor: "G♯"},
	{Major: "F♯", Minor: "D♯"},
	{Major: "C♯", Minor: "A♯"},
	{Major: "F", Minor: "D"},
	{Major: "B♭", Minor: "G"},
	{Major: "E♭", Minor: "C"},
	{Major: "A♭", Minor: "F"},
	{Major: "D♭", Minor: "B♭"},
	{Major: "G♭", Minor: "E♭"},
	{Major: "C♭", Minor: "A♭"},
}

// All returns a copy of the catalogue in circle-of-fifths order.
func All() []Pair {
	return slices.Clone(all)
}

// DefaultSelection is the subset preselected in the key selector.
func DefaultSelection() []string {
	return []string{"C", "G", "D", "A", "E", "B", "F♯", "C♯", "F", "B♭", "E♭", "A♭"}
}

// IsMajor reports whether name is a major key in the catalogue.
func IsMajor(name string) bool {
	for _, p := range all {
		if p.Major == name {
			return true
		}
	}
	return false
}

// Filter returns the pairs available for a round. With SourceSelected only
// pairs whose major is in selected are kept.
func Filter(source Source, selected []string) []Pair {
	if source != SourceSelected {
		return All()
	}
	var out []Pair
	for _, p := range all {
		if slices.Contains(selected, p.Major) {
			out = append(out, p)
		}
	}
	return out
}

// ItemCount returns the number of pairs for a difficulty. Unknown values
// fall back to easy.
func ItemCount(d Difficulty) int {
	switch d {
	case Medium:
		return 5
	case Hard:
		return 8
	default:
		return 3
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == MajorToMinor || m == MinorToMajor
}

// Valid reports whether s is a known key source.
func (s Source) Valid() bool {
	return s == SourceAll || s == SourceSelected
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Label is the short human name used on buttons.
func (m Mode) Label() string {
	if m == MinorToMajor {
		return "Minor → Major"
	}
	return "Major → Minor"
}
