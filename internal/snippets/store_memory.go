package snippets

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PabloPavan/snipmark_api/internal/search"
	"github.com/PabloPavan/snipmark_api/internal/tags"
)

// Field weights used to rank text matches in MemoryStore.
const (
	weightTags    = 21
	weightTitle   = 13
	weightComment = 5
	weightSource  = 3
	weightCode    = 1
)

// MemoryStore is an in-process Store. It evaluates filters the same way the
// Postgres repository does, with substring matching standing in for the
// text index.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Snippet
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Snippet),
		now:   time.Now,
	}
}

func (m *MemoryStore) Insert(ctx context.Context, s *Snippet) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[s.ID]; ok {
		return ErrConflict
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	m.items[s.ID] = cloneSnippet(s)
	return nil
}

func (m *MemoryStore) Find(ctx context.Context, f search.Filter, order search.Sort, page search.Page) ([]*Snippet, error) {
	_ = ctx
	hits := m.match(f)

	sort.SliceStable(hits, func(i, j int) bool {
		if order == search.SortRelevance && hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return newerFirst(hits[i].snippet, hits[j].snippet)
	})

	if page.Bounded() {
		start := min(page.Offset(), len(hits))
		end := min(start+page.Size, len(hits))
		hits = hits[start:end]
	}

	out := make([]*Snippet, 0, len(hits))
	for _, h := range hits {
		s := h.snippet
		out = append(out, &s)
	}
	return out, nil
}

func (m *MemoryStore) FindOne(ctx context.Context, f search.Filter) (*Snippet, error) {
	list, err := m.Find(ctx, f, search.SortCreatedDesc, search.Page{Size: 1})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

func (m *MemoryStore) AggregateTags(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error) {
	_ = ctx
	m.mu.RLock()
	all := make([]Snippet, 0, len(m.items))
	for _, s := range m.items {
		all = append(all, s)
	}
	m.mu.RUnlock()

	// oldest first so equal counts come out in insertion order
	sort.SliceStable(all, func(i, j int) bool { return newerFirst(all[j], all[i]) })

	docs := make([]tags.Document, 0, len(all))
	for _, s := range all {
		docs = append(docs, tags.Document{UserID: s.UserID, Public: s.Public, Tags: s.Tags})
	}
	return tags.Aggregate(docs, cond), nil
}

type memoryHit struct {
	snippet Snippet
	score   int
}

func (m *MemoryStore) match(f search.Filter) []memoryHit {
	if f.MatchNone {
		return nil
	}

	var text textQuery
	if f.HasText() {
		text = parseTextQuery(*f.Text)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]memoryHit, 0)
	for _, s := range m.items {
		if !matchesFields(s, f) {
			continue
		}
		score := 0
		if f.HasText() {
			var ok bool
			if score, ok = text.score(s); !ok {
				continue
			}
		}
		hits = append(hits, memoryHit{snippet: cloneSnippet(&s), score: score})
	}
	return hits
}

func matchesFields(s Snippet, f search.Filter) bool {
	if len(f.Tags) > 0 {
		if f.TagMatch == search.IncludeAny {
			if !containsAny(s.Tags, f.Tags) {
				return false
			}
		} else {
			for _, t := range f.Tags {
				if !slices.Contains(s.Tags, t) {
					return false
				}
			}
		}
	}
	if len(f.ExcludeTags) > 0 && containsAny(s.Tags, f.ExcludeTags) {
		return false
	}
	if f.UserID != "" && s.UserID != f.UserID {
		return false
	}
	if f.Public != nil && s.Public != *f.Public {
		return false
	}
	if f.Language != "" && s.Language != f.Language {
		return false
	}
	if f.Site != "" && !strings.Contains(strings.ToLower(s.SourceURL), strings.ToLower(f.Site)) {
		return false
	}
	if f.ID != "" && s.ID != f.ID {
		return false
	}
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, s.ID) {
		return false
	}
	return true
}

type textQuery struct {
	positive []string
	negative []string
	any      bool
}

func parseTextQuery(t search.TextSearch) textQuery {
	q := textQuery{any: t.Match == search.IncludeAny}
	for _, field := range strings.Fields(t.Search) {
		if strings.HasPrefix(field, "-") && len(field) > 1 {
			q.negative = append(q.negative, strings.ToLower(field[1:]))
			continue
		}
		if word := strings.ToLower(strings.Trim(field, `"`)); word != "" {
			q.positive = append(q.positive, word)
		}
	}
	return q
}

// score returns the weighted hit count of s, or false when s does not match.
// A query with only negated words matches nothing, like a text index does.
func (q textQuery) score(s Snippet) (int, bool) {
	fields := []struct {
		text   string
		weight int
	}{
		{strings.ToLower(strings.Join(s.Tags, " ")), weightTags},
		{strings.ToLower(s.Title), weightTitle},
		{strings.ToLower(comments(s)), weightComment},
		{strings.ToLower(s.SourceURL), weightSource},
		{strings.ToLower(code(s)), weightCode},
	}

	for _, neg := range q.negative {
		for _, f := range fields {
			if strings.Contains(f.text, neg) {
				return 0, false
			}
		}
	}

	total, matched := 0, 0
	for _, pos := range q.positive {
		hit := false
		for _, f := range fields {
			if strings.Contains(f.text, pos) {
				total += f.weight
				hit = true
			}
		}
		if hit {
			matched++
		} else if !q.any {
			return 0, false
		}
	}

	if matched == 0 {
		return 0, false
	}
	return total, true
}

func comments(s Snippet) string {
	parts := make([]string, 0, len(s.CodeSnippets)*2)
	for _, b := range s.CodeSnippets {
		parts = append(parts, b.Comment, b.CommentAfter)
	}
	return strings.Join(parts, " ")
}

func code(s Snippet) string {
	parts := make([]string, 0, len(s.CodeSnippets))
	for _, b := range s.CodeSnippets {
		parts = append(parts, b.Code)
	}
	return strings.Join(parts, "\n")
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

func newerFirst(a, b Snippet) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func cloneSnippet(s *Snippet) Snippet {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	c.CodeSnippets = slices.Clone(s.CodeSnippets)
	return c
}
