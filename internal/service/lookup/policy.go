package lookup

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy decides how a query value is compared with a card attribute.
type Policy string

const (
	// PolicyTitle title-cases the query (first letter of each word upper, the
	// rest lower) and compares it byte-for-byte with the stored value.
	PolicyTitle Policy = "title"
	// PolicyExact compares the query unchanged.
	PolicyExact Policy = "exact"
	// PolicyFold compares case-folded query and stored value.
	PolicyFold Policy = "fold"
)

// ParsePolicy accepts "title", "exact" or "fold" in any case.
func ParsePolicy(raw string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(raw))); p {
	case PolicyTitle, PolicyExact, PolicyFold:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown match policy %q", ErrInvalidParameter, raw)
	}
}

// matcher returns a predicate reporting whether a stored value matches query.
// The query is normalized once; casers are not safe for concurrent use, so a
// fresh one is built per call.
func (p Policy) matcher(query string) func(stored string) bool {
	switch p {
	case PolicyExact:
		return func(stored string) bool { return stored == query }
	case PolicyFold:
		folder := cases.Fold()
		want := folder.String(query)
		return func(stored string) bool { return folder.String(stored) == want }
	default:
		want := TitleCase(query)
		return func(stored string) bool { return stored == want }
	}
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
