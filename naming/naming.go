// Package naming holds the single case-conversion rule every generated file
// goes through. Templates never convert names themselves; they receive the
// already-converted spellings so that the entity, DAO, service, and mapper
// layers agree on every identifier.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAcronyms are the identifier fragments kept upper-case when they form
// a whole word, e.g. url_path -> URLPath. The set is deliberately small;
// callers with house naming conventions build their own Rule.
var DefaultAcronyms = []string{"API", "HTTP", "HTTPS", "ID", "JSON", "SQL", "URI", "URL", "UUID", "XML"}

// Rule converts database identifiers to Java identifiers. The zero value is
// not usable; construct with NewRule.
type Rule struct {
	acronyms map[string]string
	title    cases.Caser
}

// NewRule returns a Rule preserving the given acronyms. With no arguments the
// rule still title-cases ordinary words.
func NewRule(acronyms ...string) *Rule {
	r := &Rule{
		acronyms: make(map[string]string, len(acronyms)),
		title:    cases.Title(language.Und, cases.NoLower),
	}
	for _, a := range acronyms {
		r.acronyms[strings.ToUpper(a)] = strings.ToUpper(a)
	}
	return r
}

// Default is the rule used when a request does not configure its own.
var Default = NewRule(DefaultAcronyms...)

// Pascal converts a database identifier to PascalCase: each word boundary
// starts a capitalized word, acronym words keep their canonical spelling.
// Mixed-case input is first normalized through snake_case so that
// "URLPath" and "url_path" convert identically.
func (r *Rule) Pascal(name string) string {
	var b strings.Builder
	for _, w := range r.words(name) {
		if a, ok := r.acronyms[strings.ToUpper(w)]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(r.title.String(strings.ToLower(w)))
	}
	return b.String()
}

// Camel converts a database identifier to camelCase. The first word is
// lowered in full, acronym or not, so that "id" stays "id" and "url_path"
// becomes "urlPath".
func (r *Rule) Camel(name string) string {
	words := r.words(name)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		if a, ok := r.acronyms[strings.ToUpper(w)]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(r.title.String(strings.ToLower(w)))
	}
	return b.String()
}

// Capitalize upper-cases the first letter only, for getter/setter spellings
// derived from an already camel-cased field name.
func (r *Rule) Capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// words splits an identifier on underscores and case boundaries.
// inflect.Underscore handles the case-boundary splitting so the rule does
// not re-invent it.
func (r *Rule) words(name string) []string {
	name = inflect.Underscore(strings.TrimSpace(name))
	parts := strings.FieldsFunc(name, func(c rune) bool {
		return c == '_' || c == '-' || c == ' ' || c == '.'
	})
	return parts
}
