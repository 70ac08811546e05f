package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		terms []string
		tags  []string
	}{
		{name: "empty", query: ""},
		{name: "only spaces", query: "    "},
		{name: "single term", query: "golang", terms: []string{"golang"}},
		{name: "tag with inner space", query: "hello [foo bar] world", terms: []string{"hello", "world"}, tags: []string{"foo bar"}},
		{name: "unterminated tag", query: "a [unterminated", terms: []string{"a"}, tags: []string{"unterminated"}},
		{name: "stray closing bracket", query: "a ] b", terms: []string{"a", "b"}},
		{name: "tag is trimmed", query: "[  spring boot  ]", tags: []string{"spring boot"}},
		{name: "nested open bracket ignored", query: "[a [b]", tags: []string{"a b"}},
		{name: "multiple tags", query: "[go] [rust] cli", terms: []string{"cli"}, tags: []string{"go", "rust"}},
		{name: "term around tag", query: "foo[bar]baz qux", terms: []string{"foobaz", "qux"}, tags: []string{"bar"}},
		{name: "negated term", query: "-java spring", terms: []string{"-java", "spring"}},
		{name: "repeated spaces", query: "  a   b  ", terms: []string{"a", "b"}},
		{name: "directives stay terms", query: "lang:go private:only", terms: []string{"lang:go", "private:only"}},
		{name: "unicode", query: "café [naïve tag]", terms: []string{"café"}, tags: []string{"naïve tag"}},
		{name: "blank tag", query: "[   ]", tags: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, tags := Tokenize(tt.query)
			assert.Equal(t, tt.terms, terms)
			assert.Equal(t, tt.tags, tags)
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	queries := []string{
		"hello [foo bar] world",
		"a [unterminated",
		"foo[bar]baz   qux ]",
		"[x][y] -z \"quoted\" lang:go",
		"user:123e4567-e89b-12d3-a456-426614174000 [ spaced  tag ]",
	}

	for _, q := range queries {
		terms, tags := Tokenize(q)

		parts := append([]string{}, terms...)
		for _, tag := range tags {
			parts = append(parts, "["+tag+"]")
		}

		terms2, tags2 := Tokenize(strings.Join(parts, " "))
		assert.Equal(t, terms, terms2, q)
		assert.Equal(t, tags, tags2, q)
	}
}
