package template

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// smallWords stay lowercase in title case unless they open a segment.
var smallWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "as": {}, "at": {}, "but": {}, "by": {},
	"for": {}, "in": {}, "of": {}, "on": {}, "or": {}, "the": {}, "to": {},
	"with": {}, "via": {}, "vs": {}, "nor": {},
}

var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// ToTitleCase title-cases a label, keeping small connector words lowercase
// and treating each <br>-separated segment as a fresh start. The tags
// themselves pass through untouched.
//
//	ToTitleCase("PRODUCT DEVELOPMENT STRATEGY") == "Product Development Strategy"
//	ToTitleCase("CORE OF THE BUSINESS") == "Core of the Business"
//	ToTitleCase("VISION<br>STATEMENT") == "Vision<br>Statement"
func ToTitleCase(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	pos := 0
	firstSegment := true
	for _, loc := range brTag.FindAllStringIndex(text, -1) {
		firstSegment = writeTitled(&b, text[pos:loc[0]], firstSegment)
		b.WriteString(text[loc[0]:loc[1]])
		firstSegment = true
		pos = loc[1]
	}
	writeTitled(&b, text[pos:], firstSegment)
	return b.String()
}

// writeTitled writes one segment and reports whether the next segment is
// still the first wordful one.
func writeTitled(b *strings.Builder, segment string, firstSegment bool) bool {
	words := strings.Fields(segment)
	for i, word := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		lower := strings.ToLower(word)
		if _, small := smallWords[lower]; (i == 0 && firstSegment) || !small {
			b.WriteString(capitalize(lower))
		} else {
			b.WriteString(lower)
		}
	}
	if len(words) > 0 {
		return false
	}
	return firstSegment
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// TitleCaseFields returns a copy of content with the named fields
// title-cased. Missing or empty fields are left alone.
func TitleCaseFields(content map[string]string, fields []string) map[string]string {
	out := make(map[string]string, len(content))
	for k, v := range content {
		out[k] = v
	}
	for _, f := range fields {
		if v, ok := out[f]; ok && v != "" {
			out[f] = ToTitleCase(v)
		}
	}
	return out
}
