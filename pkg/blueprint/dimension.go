package blueprint

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// Dimension is a length label as printed on a drawing, e.g. "10.5m" or 12'6".
// Page and At are set when the label was found in an extracted page.
type Dimension struct {
	Text  string          `json:"text"`
	Value float64         `json:"value"`
	Unit  takeoff.Unit    `json:"unit"`
	Page  int             `json:"page,omitempty"`
	At    *geometry.Point `json:"at,omitempty"`
}

var (
	feetInchesRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*'\s*-?\s*(\d+(?:\.\d+)?)\s*"`)
	dimensionRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(feet|foot|ft|metres|meters|metre|meter|m|inches|inch|in|'|")`)
)

// ParseDimension parses a single label. Feet-and-inches labels are returned
// in feet.
func ParseDimension(label string) (Dimension, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Dimension{}, fmt.Errorf("empty dimension label")
	}

	if m := feetInchesRe.FindStringSubmatch(s); m != nil && m[0] == s {
		return feetInches(m)
	}
	if m := dimensionRe.FindStringSubmatch(s); m != nil && m[0] == s {
		return simpleDimension(m)
	}
	return Dimension{}, fmt.Errorf("unrecognised dimension label %q", label)
}

// FindDimensions scans free text for dimension labels, in order of appearance
func FindDimensions(text string) []Dimension {
	type found struct {
		start int
		dim   Dimension
	}
	var hits []found
	covered := make([]bool, len(text))

	for _, idx := range feetInchesRe.FindAllStringSubmatchIndex(text, -1) {
		if d, err := feetInches(submatches(text, idx)); err == nil {
			hits = append(hits, found{start: idx[0], dim: d})
			for i := idx[0]; i < idx[1]; i++ {
				covered[i] = true
			}
		}
	}

	for _, idx := range dimensionRe.FindAllStringSubmatchIndex(text, -1) {
		if covered[idx[0]] || !boundaryBefore(text, idx[0]) || !boundaryAfter(text, idx[1]) {
			continue
		}
		if spacedWordUnit(text, idx) && followedByWord(text, idx[1]) {
			continue
		}
		if d, err := simpleDimension(submatches(text, idx)); err == nil {
			hits = append(hits, found{start: idx[0], dim: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	dims := make([]Dimension, len(hits))
	for i, h := range hits {
		dims[i] = h.dim
	}
	return dims
}

func feetInches(m []string) (Dimension, error) {
	ft, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Dimension{}, err
	}
	in, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{Text: m[0], Value: ft + in/12, Unit: takeoff.Feet}, nil
}

func simpleDimension(m []string) (Dimension, error) {
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Dimension{}, err
	}
	unit, err := takeoff.ParseUnit(m[2])
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{Text: m[0], Value: v, Unit: unit}, nil
}

func submatches(text string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r := rune(text[end])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r := rune(text[start-1])
	return !unicode.IsDigit(r) && r != '.'
}

// spacedWordUnit reports a unit that is also an everyday word ("in", "m")
// separated from its number by whitespace, as in "Room 3 in plan".
func spacedWordUnit(text string, idx []int) bool {
	unit := strings.ToLower(text[idx[4]:idx[5]])
	if unit != "in" && unit != "m" {
		return false
	}
	return idx[4] > idx[3]
}

// followedByWord reports whether the next token after end is a word of at
// least two letters. A lone "x" between dimensions does not count.
func followedByWord(text string, end int) bool {
	rest := strings.TrimLeftFunc(text[end:], unicode.IsSpace)
	if len(rest) == len(text[end:]) {
		return false
	}
	letters := 0
	for _, r := range rest {
		if !unicode.IsLetter(r) {
			break
		}
		letters++
	}
	return letters >= 2
}
