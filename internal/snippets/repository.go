package snippets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/PabloPavan/snipmark_api/internal/db"
	"github.com/PabloPavan/snipmark_api/internal/search"
	"github.com/PabloPavan/snipmark_api/internal/tags"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	snippetColumns = `id, title, language, code_snippets, tags, user_id, public, source_url, copied_from_id, created_at, updated_at`

	sqlSnippetInsert = `INSERT INTO snippets (id, title, language, code_snippets, tags, user_id, public, source_url, copied_from_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at;`

	sqlSnippetFind = `SELECT ` + snippetColumns + `
		FROM snippets
		WHERE %s
		ORDER BY %s`

	sqlSnippetTags = `SELECT tag, count(*) AS cnt
		FROM snippets, unnest(tags) AS tag
		WHERE %s
		GROUP BY tag
		ORDER BY cnt DESC, tag ASC;`

	tsQuery = `websearch_to_tsquery('simple', $%d)`
)

func (r *Repository) Insert(ctx context.Context, s *Snippet) error {
	blocks, err := json.Marshal(nonNilBlocks(s.CodeSnippets))
	if err != nil {
		return err
	}

	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return r.base.Q().QueryRow(ctx, sqlSnippetInsert,
		s.ID,
		s.Title,
		s.Language,
		blocks,
		nonNilTags(s.Tags),
		s.UserID,
		s.Public,
		s.SourceURL,
		s.CopiedFromID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) Find(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
	where, args, textPos := buildWhere(f)

	order := "created_at DESC, id"
	if sort == search.SortRelevance && textPos > 0 {
		order = fmt.Sprintf("ts_rank(search_tsv, "+tsQuery+") DESC, created_at DESC, id", textPos)
	}

	query := fmt.Sprintf(sqlSnippetFind, where, order)
	if page.Bounded() {
		args = append(args, page.Size, page.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacity := 16
	if page.Bounded() {
		capacity = page.Size
	}
	out := make([]*Snippet, 0, capacity)
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindOne(ctx context.Context, f search.Filter) (*Snippet, error) {
	where, args, _ := buildWhere(f)
	query := fmt.Sprintf(sqlSnippetFind, where, "created_at DESC") + " LIMIT 1"

	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	s, err := scanSnippet(r.base.Q().QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *Repository) AggregateTags(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error) {
	where, args, _ := buildWhere(cond.Filter())

	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, fmt.Sprintf(sqlSnippetTags, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tags.Frequency, 0, 32)
	for rows.Next() {
		var f tags.Frequency
		var count int64
		if err := rows.Scan(&f.Name, &count); err != nil {
			return nil, err
		}
		f.Count = int(count)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a clause whose single placeholder is written as $%d and returns
// the argument position.
func (w *whereBuilder) add(clause string, arg any) int {
	w.args = append(w.args, arg)
	pos := len(w.args)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, pos))
	return pos
}

func buildWhere(f search.Filter) (string, []any, int) {
	w := &whereBuilder{args: make([]any, 0, 8)}

	if f.MatchNone {
		w.clauses = append(w.clauses, "FALSE")
	}

	if len(f.Tags) > 0 {
		if f.TagMatch == search.IncludeAny {
			w.add("tags && $%d", f.Tags)
		} else {
			w.add("tags @> $%d", f.Tags)
		}
	}
	if len(f.ExcludeTags) > 0 {
		w.add("NOT (tags && $%d)", f.ExcludeTags)
	}

	textPos := 0
	if f.HasText() {
		positive, negative := tsQueryTerms(*f.Text)
		if positive == "" {
			w.clauses = append(w.clauses, "FALSE")
		} else {
			textPos = w.add("search_tsv @@ "+tsQuery, positive)
		}
		if negative != "" {
			w.add("NOT (search_tsv @@ "+tsQuery+")", negative)
		}
	}

	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if f.Public != nil {
		w.add("public = $%d", *f.Public)
	}
	if f.Language != "" {
		w.add("language = $%d", f.Language)
	}
	if f.Site != "" {
		w.add(`source_url ILIKE $%d ESCAPE '\'`, "%"+escapeLike(f.Site)+"%")
	}
	if f.ID != "" {
		w.add("id = $%d", f.ID)
	}
	if len(f.IDs) > 0 {
		w.add("id = ANY($%d)", f.IDs)
	}

	if len(w.clauses) == 0 {
		return "TRUE", w.args, textPos
	}
	return strings.Join(w.clauses, " AND "), w.args, textPos
}

// tsQueryTerms splits a compiled text expression into positive and negated
// websearch_to_tsquery inputs. Plain words are AND-ed there, so IncludeAny
// needs explicit "or" operators. Negated words are returned separately as an
// "or" list to exclude; inside an "or" chain they would match every document
// lacking them. A query with no positive words matches nothing.
func tsQueryTerms(t search.TextSearch) (positive, negative string) {
	var pos, neg []string
	for _, field := range strings.Fields(t.Search) {
		if strings.HasPrefix(field, "-") && len(field) > 1 {
			neg = append(neg, field[1:])
			continue
		}
		pos = append(pos, field)
	}
	sep := " "
	if t.Match == search.IncludeAny {
		sep = " or "
	}
	return strings.Join(pos, sep), strings.Join(neg, " or ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (*Snippet, error) {
	var s Snippet
	var blocks []byte
	if err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Language,
		&blocks,
		&s.Tags,
		&s.UserID,
		&s.Public,
		&s.SourceURL,
		&s.CopiedFromID,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &s.CodeSnippets); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func nonNilTags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}

func nonNilBlocks(b []CodeBlock) []CodeBlock {
	if b == nil {
		return []CodeBlock{}
	}
	return b
}
