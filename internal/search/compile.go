package search

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned for point lookups whose id is not a valid snippet
// id. Nothing can match it, so callers treat it like a missing document.
var ErrNotFound = errors.New("not found")

// Query is a tokenized search string with its directives separated out.
type Query struct {
	Raw        string
	Terms      []string
	Tags       []string
	Directives Directives
}

func Parse(raw string) Query {
	terms, tags := Tokenize(raw)
	directives, normal := ExtractDirectives(terms)
	return Query{
		Raw:        raw,
		Terms:      normal,
		Tags:       tags,
		Directives: directives,
	}
}

// Requester is the identity a query runs for. An empty UserID is anonymous.
type Requester struct {
	UserID string
}

func (r Requester) Anonymous() bool {
	return strings.TrimSpace(r.UserID) == ""
}

type CompileInput struct {
	Query     Query
	Include   Include
	Requester Requester
	TargetID  string
	Page      Page
}

type Compiled struct {
	Filter Filter
	Mode   Mode
	Sort   Sort
	Page   Page
}

// Compile builds the store filter for a parsed query. Later rules override
// the scope set by earlier ones: a user:<id> directive always narrows to that
// user's public snippets, and private:only for an anonymous requester yields
// a filter that matches nothing.
func Compile(in CompileInput) (*Compiled, error) {
	include := in.Include
	if include == "" {
		include = IncludeAll
	}

	var f Filter

	if tags := nonEmpty(in.Query.Tags); len(tags) > 0 {
		f.Tags = tags
		f.TagMatch = include
	}

	if len(in.Query.Terms) > 0 {
		f.Text = &TextSearch{
			Search: TextExpression(in.Query.Terms, include),
			Match:  include,
		}
	}

	if in.Requester.Anonymous() {
		f.Public = Bool(true)
	} else {
		f.UserID = in.Requester.UserID
	}

	d := in.Query.Directives
	switch {
	case d.UserID != "":
		f.UserID = d.UserID
		f.Public = Bool(true)
	case d.PrivateOnly:
		f.Public = Bool(false)
		if f.UserID == "" {
			f.MatchNone = true
		}
	}

	if d.Lang != "" {
		f.Language = d.Lang
	}
	if d.Site != "" {
		f.Site = d.Site
	}

	out := &Compiled{Filter: f, Mode: ModeList, Sort: SortCreatedDesc}
	if f.HasText() {
		out.Sort = SortRelevance
	}

	if in.TargetID != "" {
		id, err := NormalizeID(in.TargetID)
		if err != nil {
			return nil, err
		}
		out.Filter.ID = id
		out.Mode = ModeSingle
		return out, nil
	}

	out.Page = in.Page
	return out, nil
}

// TextExpression joins terms into a text-search expression. In IncludeAll
// mode every term becomes a quoted phrase except negated ("-foo") terms,
// which pass through so the text index treats them as exclusions.
func TextExpression(terms []string, include Include) string {
	if include == IncludeAny {
		return strings.Join(terms, " ")
	}

	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.HasPrefix(term, "-") {
			parts = append(parts, term)
			continue
		}
		parts = append(parts, `"`+term+`"`)
	}
	return strings.Join(parts, " ")
}

// NormalizeID validates a snippet id. Snippet ids are UUIDs; anything else is
// reported as ErrNotFound.
func NormalizeID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", ErrNotFound
	}
	return u.String(), nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
