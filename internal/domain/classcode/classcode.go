// Package classcode normalises free-text class labels ("5ème A", "5emeA",
// "5 a") into short canonical codes ("5A") used for filtering.
package classcode

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ordinalSuffix is the French ordinal marker left after accent folding.
const ordinalSuffix = "EME"

var (
	nonAlnum  = regexp.MustCompile(`[^A-Z0-9]`)
	shortForm = regexp.MustCompile(`^(\d{1,2})([A-Z])$`)
)

// Canon returns the canonical code for raw. Labels that do not reduce to
// one or two digits followed by a letter are returned stripped but otherwise
// unchanged. Canon(Canon(x)) == Canon(x).
func Canon(raw string) string {
	if raw == "" {
		return ""
	}
	// Full case mapping: "ß" becomes "SS".
	s := foldAccents(cases.Upper(language.Und).String(raw))
	s = nonAlnum.ReplaceAllString(s, "")
	for strings.Contains(s, ordinalSuffix) {
		s = strings.ReplaceAll(s, ordinalSuffix, "")
	}
	if m := shortForm.FindStringSubmatch(s); m != nil {
		return m[1] + m[2]
	}
	return s
}

// foldAccents decomposes s and drops combining marks.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Unique returns the sorted distinct non-empty canonical codes of labels.
func Unique(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		c := Canon(l)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
