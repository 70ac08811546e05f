// Package search turns free-text search strings into store filters.
//
// A query is made of plain terms, bracketed tags ("[spring boot]") and
// directives such as lang:go, site:github.com, private:only and
// user:<uuid>. Tokenize splits the raw string, ExtractDirectives pulls the
// directives out of the terms and Compile merges everything with the
// requester's scope into a Filter the snippet store understands.
package search

import "strings"

type scanState int

const (
	statePlain scanState = iota
	stateTerm
	stateTag
)

// Tokenize splits a raw query into free terms and bracketed tags.
// Malformed brackets never fail: an unterminated tag is flushed at the end of
// input and a stray ']' is dropped.
func Tokenize(query string) (terms []string, tags []string) {
	if query == "" {
		return nil, nil
	}

	var term, tag strings.Builder
	state := statePlain

	for _, r := range query {
		switch r {
		case ' ':
			switch state {
			case stateTag:
				tag.WriteRune(' ')
			case stateTerm:
				terms = append(terms, term.String())
				term.Reset()
				state = statePlain
			}

		case '[':
			// no nesting: a '[' inside a tag is ignored
			state = stateTag

		case ']':
			if state == stateTag {
				tags = append(tags, strings.TrimSpace(tag.String()))
				tag.Reset()
				state = resumeState(term.Len())
			}

		default:
			if state == stateTag {
				tag.WriteRune(r)
			} else {
				term.WriteRune(r)
				state = stateTerm
			}
		}
	}

	if tag.Len() > 0 {
		tags = append(tags, strings.TrimSpace(tag.String()))
	}
	if term.Len() > 0 {
		terms = append(terms, term.String())
	}

	return terms, tags
}

// resumeState is the state after a tag closes. A term that was being built
// before the '[' is still open, so the next space flushes it.
func resumeState(pendingTerm int) scanState {
	if pendingTerm > 0 {
		return stateTerm
	}
	return statePlain
}
