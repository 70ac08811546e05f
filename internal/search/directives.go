package search

import (
	"strings"

	"github.com/google/uuid"
)

const (
	prefixLang  = "lang:"
	prefixSite  = "site:"
	prefixUser  = "user:"
	privateOnly = "private:only"
)

// Directives holds the special filters found in a query. Empty strings mean
// the directive was not given.
type Directives struct {
	Lang        string
	Site        string
	PrivateOnly bool
	UserID      string
}

func (d Directives) Empty() bool {
	return d.Lang == "" && d.Site == "" && !d.PrivateOnly && d.UserID == ""
}

// ExtractDirectives separates directive terms from normal search terms.
// Repeated lang:, site: and user: directives keep the last value.
func ExtractDirectives(terms []string) (Directives, []string) {
	var d Directives
	var normal []string

	for _, term := range terms {
		switch {
		case strings.HasPrefix(term, prefixLang):
			d.Lang = term[len(prefixLang):]
		case strings.HasPrefix(term, prefixSite):
			d.Site = term[len(prefixSite):]
		case term == privateOnly:
			d.PrivateOnly = true
		case strings.HasPrefix(term, prefixUser) && IsCanonicalUUID(term[len(prefixUser):]):
			d.UserID = term[len(prefixUser):]
		default:
			normal = append(normal, term)
		}
	}

	return d, normal
}

// IsCanonicalUUID reports whether s is a lowercase 8-4-4-4-12 hex UUID.
// uuid.Parse alone also accepts braces, urn prefixes and uppercase digits.
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 || strings.ToLower(s) != s {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
