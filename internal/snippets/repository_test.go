package snippets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloPavan/snipmark_api/internal/db/dbtest"
	"github.com/PabloPavan/snipmark_api/internal/search"
	"github.com/PabloPavan/snipmark_api/internal/tags"
)

func seedRepository(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(dbtest.Start(t))
	ctx := context.Background()

	seed := []*Snippet{
		{ID: idGoPublic, Title: "http server", Language: "go", Tags: []string{"go", "http"}, UserID: "usr_1", Public: true,
			SourceURL: "https://go.dev/doc", CodeSnippets: []CodeBlock{{Code: "http.ListenAndServe()", Comment: "start listening"}}},
		{ID: idGoPrivate, Title: "secret go trick", Language: "go", Tags: []string{"go"}, UserID: "usr_1", Public: false},
		{ID: idPyPublic, Title: "list comprehension", Language: "python", Tags: []string{"python"}, UserID: "usr_1", Public: true},
		{ID: idOtherOwner, Title: "go channels", Language: "go", Tags: []string{"go", "concurrency"}, UserID: "usr_2", Public: true},
	}
	for _, s := range seed {
		require.NoError(t, repo.Insert(ctx, s))
		require.False(t, s.CreatedAt.IsZero())
	}
	return repo
}

func TestRepositoryFind(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter search.Filter
		want   []string
	}{
		{"all tags", search.Filter{Tags: []string{"go", "http"}, TagMatch: search.IncludeAll}, []string{idGoPublic}},
		{"any tag", search.Filter{Tags: []string{"http", "python"}, TagMatch: search.IncludeAny}, []string{idGoPublic, idPyPublic}},
		{"exclude", search.Filter{Tags: []string{"go"}, ExcludeTags: []string{"concurrency"}}, []string{idGoPublic, idGoPrivate}},
		{"public", search.Filter{Public: search.Bool(true), UserID: "usr_1"}, []string{idGoPublic, idPyPublic}},
		{"private", search.Filter{Public: search.Bool(false)}, []string{idGoPrivate}},
		{"language", search.Filter{Language: "python"}, []string{idPyPublic}},
		{"site", search.Filter{Site: "GO.DEV"}, []string{idGoPublic}},
		{"ids", search.Filter{IDs: []string{idPyPublic, idOtherOwner}}, []string{idPyPublic, idOtherOwner}},
		{"match none", search.Filter{MatchNone: true}, nil},
		{"text all", search.Filter{Text: &search.TextSearch{Search: `"go" "channels"`, Match: search.IncludeAll}}, []string{idOtherOwner}},
		{"text any", search.Filter{Text: &search.TextSearch{Search: "channels comprehension", Match: search.IncludeAny}}, []string{idOtherOwner, idPyPublic}},
		{"text negated", search.Filter{Text: &search.TextSearch{Search: `"go" -secret`, Match: search.IncludeAll}}, []string{idGoPublic, idOtherOwner}},
		{"text any negated", search.Filter{Text: &search.TextSearch{Search: "channels comprehension -list", Match: search.IncludeAny}}, []string{idOtherOwner}},
		{"text only negated", search.Filter{Text: &search.TextSearch{Search: "-secret", Match: search.IncludeAll}}, nil},
		{"comment", search.Filter{Text: &search.TextSearch{Search: `"listening"`, Match: search.IncludeAll}}, []string{idGoPublic}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Find(ctx, tc.filter, search.SortCreatedDesc, search.Unbounded())
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, ids(got))
		})
	}
}

func TestTSQueryTerms(t *testing.T) {
	pos, neg := tsQueryTerms(search.TextSearch{Search: "foo -bar baz -qux", Match: search.IncludeAny})
	assert.Equal(t, "foo or baz", pos)
	assert.Equal(t, "bar or qux", neg)

	pos, neg = tsQueryTerms(search.TextSearch{Search: `"foo" -bar`, Match: search.IncludeAll})
	assert.Equal(t, `"foo"`, pos)
	assert.Equal(t, "bar", neg)

	pos, neg = tsQueryTerms(search.TextSearch{Search: "-bar", Match: search.IncludeAny})
	assert.Empty(t, pos)
	assert.Equal(t, "bar", neg)
}

func TestRepositoryFindRelevanceAndPaging(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()

	text := &search.TextSearch{Search: "http go", Match: search.IncludeAny}
	got, err := repo.Find(ctx, search.Filter{Text: text}, search.SortRelevance, search.Unbounded())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, idGoPublic, got[0].ID)

	page, err := repo.Find(ctx, search.Filter{}, search.SortCreatedDesc, search.NewPage(2, 3))
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestRepositoryFindOne(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()

	got, err := repo.FindOne(ctx, search.Filter{ID: idGoPublic, Public: search.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, "http server", got.Title)
	require.Len(t, got.CodeSnippets, 1)
	assert.Equal(t, "start listening", got.CodeSnippets[0].Comment)

	_, err = repo.FindOne(ctx, search.Filter{ID: idGoPrivate, Public: search.Bool(true)})
	assert.True(t, IsNotFound(err))
}

func TestRepositoryInsertConflict(t *testing.T) {
	repo := seedRepository(t)
	err := repo.Insert(context.Background(), &Snippet{ID: idGoPublic, Title: "dup", UserID: "usr_1"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestRepositoryAggregateTags(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()

	got, err := repo.AggregateTags(ctx, tags.Public())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, tags.Frequency{Name: "go", Count: 2}, got[0])

	got, err = repo.AggregateTags(ctx, tags.UserPrivate("usr_1"))
	require.NoError(t, err)
	assert.Equal(t, []tags.Frequency{{Name: "go", Count: 1}}, got)
}
