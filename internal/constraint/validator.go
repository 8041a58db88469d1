package constraint

import (
	"regexp"
	"unicode/utf8"
)

// Direction says which side of the budget a violation fell on.
type Direction string

const (
	DirectionUnder Direction = "under"
	DirectionOver  Direction = "over"
)

// Violation describes one field that missed its character budget.
type Violation struct {
	Field        string    `json:"field"`
	ActualLength int       `json:"actual_length"`
	Min          int       `json:"min_required"`
	Max          int       `json:"max_required"`
	Direction    Direction `json:"direction"`
	Excerpt      string    `json:"excerpt"`
}

// Report is the outcome of validating one content set against a spec.
// Violations are ordered by the spec's field order.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// StripTags removes inline markup so character counts reflect visible text.
// Models are told to wrap 1-2 key words in <strong> and may split labels
// with <br>; neither counts toward the budget.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

const excerptLen = 50

// Validate checks every spec field against its budget. Bounds are inclusive.
// Fields missing from content count as empty strings. Pure function.
// Violations is never nil; a clean report serializes as an empty array.
func Validate(content map[string]string, spec Spec) Report {
	violations := []Violation{}
	for _, f := range spec.Fields {
		value := content[f.Name]
		n := utf8.RuneCountInString(StripTags(value))
		if n >= f.Min && n <= f.Max {
			continue
		}
		dir := DirectionOver
		if n < f.Min {
			dir = DirectionUnder
		}
		violations = append(violations, Violation{
			Field:        f.Name,
			ActualLength: n,
			Min:          f.Min,
			Max:          f.Max,
			Direction:    dir,
			Excerpt:      excerpt(value),
		})
	}
	return Report{Valid: len(violations) == 0, Violations: violations}
}

// CharacterCounts returns the stripped visible length of every spec field
// present in content.
func CharacterCounts(content map[string]string, spec Spec) map[string]int {
	counts := make(map[string]int, len(spec.Fields))
	for _, f := range spec.Fields {
		if value, ok := content[f.Name]; ok {
			counts[f.Name] = utf8.RuneCountInString(StripTags(value))
		}
	}
	return counts
}

// excerpt trims the raw (unstripped) value for diagnostic display.
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLen {
		return s
	}
	return string(runes[:excerptLen]) + "..."
}
