package tags

import (
	"errors"
	"sort"
	"strings"

	"github.com/PabloPavan/snipmark_api/internal/search"
)

var ErrUnknownScope = errors.New("unknown tag scope")

const (
	ScopePublic      = "public"
	ScopeUserPublic  = "user-public"
	ScopeUserPrivate = "user-private"
	ScopeUserAll     = "user-all"
)

// Condition selects the documents whose tags are counted. An empty UserID
// matches every owner and a nil Public matches both visibilities.
type Condition struct {
	UserID string
	Public *bool
}

type Frequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Document is the part of a stored snippet the aggregation looks at.
type Document struct {
	UserID string
	Public bool
	Tags   []string
}

func Public() Condition {
	return Condition{Public: search.Bool(true)}
}

func UserPublic(userID string) Condition {
	return Condition{UserID: userID, Public: search.Bool(true)}
}

func UserPrivate(userID string) Condition {
	return Condition{UserID: userID, Public: search.Bool(false)}
}

func UserAll(userID string) Condition {
	return Condition{UserID: userID}
}

// ParseScope maps a scope name to its condition. Every scope except
// ScopePublic needs a user id.
func ParseScope(name, userID string) (Condition, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	userID = strings.TrimSpace(userID)

	if name == "" || name == ScopePublic {
		return Public(), nil
	}
	if userID == "" {
		return Condition{}, ErrUnknownScope
	}

	switch name {
	case ScopeUserPublic:
		return UserPublic(userID), nil
	case ScopeUserPrivate:
		return UserPrivate(userID), nil
	case ScopeUserAll:
		return UserAll(userID), nil
	default:
		return Condition{}, ErrUnknownScope
	}
}

func (c Condition) Matches(userID string, public bool) bool {
	if c.UserID != "" && c.UserID != userID {
		return false
	}
	if c.Public != nil && *c.Public != public {
		return false
	}
	return true
}

// Filter expresses the condition as a snippet store filter.
func (c Condition) Filter() search.Filter {
	return search.Filter{UserID: c.UserID, Public: c.Public}
}

// Aggregate counts tag occurrences across the documents matching cond and
// returns them by descending count. Ties keep first-appearance order.
func Aggregate(docs []Document, cond Condition) []Frequency {
	index := make(map[string]int)
	out := make([]Frequency, 0)

	for _, d := range docs {
		if !cond.Matches(d.UserID, d.Public) {
			continue
		}
		for _, tag := range d.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(out)
				index[tag] = i
				out = append(out, Frequency{Name: tag})
			}
			out[i].Count++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
