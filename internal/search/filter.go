package search

import (
	"errors"
	"strings"
)

var ErrInvalidInclude = errors.New("include must be one of: all, any")

// Include selects whether every tag/term must match or just one of them.
type Include string

const (
	IncludeAll Include = "all"
	IncludeAny Include = "any"
)

func ParseInclude(s string) (Include, error) {
	switch Include(strings.ToLower(strings.TrimSpace(s))) {
	case "", IncludeAll:
		return IncludeAll, nil
	case IncludeAny:
		return IncludeAny, nil
	default:
		return "", ErrInvalidInclude
	}
}

type TextSearch struct {
	Search string
	Match  Include
}

// Filter is the structured query handed to the snippet store. Zero-valued
// fields add no constraint.
type Filter struct {
	Tags        []string
	TagMatch    Include
	ExcludeTags []string
	Text        *TextSearch
	UserID      string
	Public      *bool
	Language    string
	Site        string
	ID          string
	IDs         []string

	// MatchNone marks a filter that can never select a document.
	MatchNone bool
}

func (f Filter) HasText() bool {
	return f.Text != nil && strings.TrimSpace(f.Text.Search) != ""
}

// PublicOnly reports whether the filter is restricted to public documents
// without any ownership clause.
func (f Filter) PublicOnly() bool {
	return f.Public != nil && *f.Public && f.UserID == ""
}

type Mode int

const (
	ModeList Mode = iota
	ModeSingle
)

type Sort int

const (
	SortCreatedDesc Sort = iota
	SortRelevance
)

func (s Sort) String() string {
	if s == SortRelevance {
		return "relevance"
	}
	return "created_at_desc"
}

func Bool(b bool) *bool {
	return &b
}
