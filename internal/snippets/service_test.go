package snippets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloPavan/snipmark_api/internal/apperrors"
	"github.com/PabloPavan/snipmark_api/internal/identity"
	"github.com/PabloPavan/snipmark_api/internal/search"
	"github.com/PabloPavan/snipmark_api/internal/tags"
	"github.com/PabloPavan/snipmark_api/internal/userdata"
)

const (
	idGoPublic   = "11111111-1111-4111-8111-111111111111"
	idGoPrivate  = "22222222-2222-4222-8222-222222222222"
	idPyPublic   = "33333333-3333-4333-8333-333333333333"
	idOtherOwner = "44444444-4444-4444-8444-444444444444"
	idOtherPriv  = "55555555-5555-4555-8555-555555555555"
)

type storeStub struct {
	findFn      func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error)
	findOneFn   func(ctx context.Context, f search.Filter) (*Snippet, error)
	aggregateFn func(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error)
	insertFn    func(ctx context.Context, s *Snippet) error
}

func (s *storeStub) Find(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
	if s.findFn != nil {
		return s.findFn(ctx, f, sort, page)
	}
	return []*Snippet{}, nil
}

func (s *storeStub) FindOne(ctx context.Context, f search.Filter) (*Snippet, error) {
	if s.findOneFn != nil {
		return s.findOneFn(ctx, f)
	}
	return nil, ErrNotFound
}

func (s *storeStub) AggregateTags(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error) {
	if s.aggregateFn != nil {
		return s.aggregateFn(ctx, cond)
	}
	return []tags.Frequency{}, nil
}

func (s *storeStub) Insert(ctx context.Context, sn *Snippet) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, sn)
	}
	return nil
}

type cacheStub struct {
	lists    map[string][]*Snippet
	ones     map[string]*Snippet
	freqs    map[string][]tags.Frequency
	listSets int
}

func newCacheStub() *cacheStub {
	return &cacheStub{
		lists: map[string][]*Snippet{},
		ones:  map[string]*Snippet{},
		freqs: map[string][]tags.Frequency{},
	}
}

func (c *cacheStub) GetOne(ctx context.Context, key string) (*Snippet, bool, error) {
	s, ok := c.ones[key]
	return s, ok, nil
}

func (c *cacheStub) SetOne(ctx context.Context, key string, s *Snippet, ttl time.Duration) error {
	c.ones[key] = s
	return nil
}

func (c *cacheStub) GetList(ctx context.Context, key string) ([]*Snippet, bool, error) {
	l, ok := c.lists[key]
	return l, ok, nil
}

func (c *cacheStub) SetList(ctx context.Context, key string, l []*Snippet, ttl time.Duration) error {
	c.listSets++
	c.lists[key] = l
	return nil
}

func (c *cacheStub) GetTags(ctx context.Context, key string) ([]tags.Frequency, bool, error) {
	f, ok := c.freqs[key]
	return f, ok, nil
}

func (c *cacheStub) SetTags(ctx context.Context, key string, f []tags.Frequency, ttl time.Duration) error {
	c.freqs[key] = f
	return nil
}

func seededService(t *testing.T) (*Service, *userdata.MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seed := []*Snippet{
		{ID: idGoPublic, Title: "http server", Language: "go", Tags: []string{"go", "http"}, UserID: "usr_1", Public: true, SourceURL: "https://go.dev/doc"},
		{ID: idGoPrivate, Title: "secret go trick", Language: "go", Tags: []string{"go"}, UserID: "usr_1", Public: false},
		{ID: idPyPublic, Title: "list comprehension", Language: "python", Tags: []string{"python"}, UserID: "usr_1", Public: true},
		{ID: idOtherOwner, Title: "go channels", Language: "go", Tags: []string{"go", "concurrency"}, UserID: "usr_2", Public: true},
		{ID: idOtherPriv, Title: "private notes", Language: "go", Tags: []string{"go"}, UserID: "usr_2", Public: false},
	}
	for i, s := range seed {
		s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Insert(context.Background(), s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	data := userdata.NewMemoryStore()
	return &Service{Store: store, UserData: data}, data
}

func ids(list []*Snippet) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(t *testing.T, got []*Snippet, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func asUser(userID string) context.Context {
	return identity.WithUser(context.Background(), userID, "member")
}

func TestServiceSearchPublicOnly(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Search(context.Background(), SearchInput{Query: "[go]"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idOtherOwner, idGoPublic)
}

func TestServiceSearchIgnoresCallerIdentity(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Search(asUser("usr_1"), SearchInput{Query: "[go]"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range got {
		if !s.Public {
			t.Fatalf("public search returned private snippet %s", s.ID)
		}
	}
}

func TestServiceSearchUserDirective(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Search(context.Background(), SearchInput{Query: "[go] user:" + "00000000-0000-4000-8000-000000000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results for unknown user, got %v", ids(got))
	}
}

func TestServiceSearchPrivateOnlyAnonymousMatchesNothing(t *testing.T) {
	store := &storeStub{findFn: func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
		t.Fatal("store must not be called for a match-nothing filter")
		return nil, nil
	}}
	svc := &Service{Store: store}

	got, err := svc.Search(context.Background(), SearchInput{Query: "private:only go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestServiceSearchTextRelevance(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Search(context.Background(), SearchInput{Query: "channels http", Include: "any"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %v", ids(got))
	}

	got, err = svc.Search(context.Background(), SearchInput{Query: "channels http"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("all-terms search should match nothing, got %v", ids(got))
	}
}

func TestServiceSearchInvalidInclude(t *testing.T) {
	svc, _ := seededService(t)
	_, err := svc.Search(context.Background(), SearchInput{Query: "go", Include: "some"})
	assertKind(t, err, apperrors.KindInvalidInput)
}

func TestServiceSearchPaging(t *testing.T) {
	var got search.Page
	store := &storeStub{findFn: func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
		got = page
		return []*Snippet{}, nil
	}}
	svc := &Service{Store: store}

	if _, err := svc.Search(context.Background(), SearchInput{Page: 3, Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (search.Page{Index: 2, Size: search.MaxPageSize}) {
		t.Fatalf("page = %+v", got)
	}
}

func TestServiceSearchStoreError(t *testing.T) {
	store := &storeStub{findFn: func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
		return nil, errors.New("boom")
	}}
	svc := &Service{Store: store}
	_, err := svc.Search(context.Background(), SearchInput{Query: "go"})
	assertKind(t, err, apperrors.KindInternal)
}

func TestServiceSearchUsesCacheForPublicScope(t *testing.T) {
	calls := 0
	store := &storeStub{findFn: func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
		calls++
		return []*Snippet{{ID: idGoPublic, Public: true}}, nil
	}}
	cache := newCacheStub()
	svc := &Service{Store: store, Cache: cache, ListCacheTTL: time.Minute}

	for range 2 {
		if _, err := svc.Search(context.Background(), SearchInput{Query: "[go]"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("store calls = %d, want 1", calls)
	}
}

func TestServiceSearchUserNotCached(t *testing.T) {
	calls := 0
	store := &storeStub{findFn: func(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error) {
		calls++
		return []*Snippet{}, nil
	}}
	cache := newCacheStub()
	svc := &Service{Store: store, Cache: cache, ListCacheTTL: time.Minute}

	for range 2 {
		if _, err := svc.SearchUser(asUser("usr_1"), "usr_1", SearchInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 || cache.listSets != 0 {
		t.Fatalf("calls = %d, sets = %d", calls, cache.listSets)
	}
}

func TestServiceSearchUserScope(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.SearchUser(asUser("usr_1"), "usr_1", SearchInput{Query: "[go]"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idGoPrivate, idGoPublic)

	got, err = svc.SearchUser(asUser("usr_1"), "usr_1", SearchInput{Query: "private:only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idGoPrivate)
}

func TestServiceSearchUserAuthorization(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.SearchUser(context.Background(), "usr_1", SearchInput{})
	assertKind(t, err, apperrors.KindUnauthorized)

	_, err = svc.SearchUser(asUser("usr_2"), "usr_1", SearchInput{})
	assertKind(t, err, apperrors.KindForbidden)

	admin := identity.WithUser(context.Background(), "usr_9", identity.RoleAdmin)
	if _, err := svc.SearchUser(admin, "usr_1", SearchInput{}); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
}

func TestServiceGet(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Get(context.Background(), "11111111-1111-4111-8111-111111111111", SearchInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != idGoPublic {
		t.Fatalf("id = %s", got.ID)
	}

	_, err = svc.Get(context.Background(), idGoPrivate, SearchInput{})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.Get(context.Background(), "not-an-id", SearchInput{})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.Get(context.Background(), "", SearchInput{})
	assertKind(t, err, apperrors.KindNotFound)
}

func TestServiceGetAppliesQuery(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.Get(context.Background(), idGoPublic, SearchInput{Query: "[python]"})
	assertKind(t, err, apperrors.KindNotFound)

	got, err := svc.Get(context.Background(), idGoPublic, SearchInput{Query: "lang:go"})
	if err != nil || got.ID != idGoPublic {
		t.Fatalf("got %v, err %v", got, err)
	}
}

func TestServiceGetUserPrivate(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.GetUser(asUser("usr_1"), "usr_1", idGoPrivate, SearchInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != idGoPrivate {
		t.Fatalf("id = %s", got.ID)
	}

	_, err = svc.GetUser(asUser("usr_1"), "usr_1", idOtherPriv, SearchInput{})
	assertKind(t, err, apperrors.KindNotFound)
}

func TestServiceTagged(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Tagged(context.Background(), "python", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idPyPublic)

	_, err = svc.Tagged(context.Background(), " ", 1, 0)
	assertKind(t, err, apperrors.KindInvalidInput)
}

func TestServiceExport(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Export(asUser("usr_1"), "usr_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idPyPublic, idGoPrivate, idGoPublic)

	_, err = svc.Export(asUser("usr_2"), "usr_1")
	assertKind(t, err, apperrors.KindForbidden)
}

func TestServiceTags(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.Tags(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || got[0] != (tags.Frequency{Name: "go", Count: 2}) {
		t.Fatalf("public tags = %v", got)
	}

	got, err = svc.Tags(asUser("usr_1"), tags.ScopeUserPrivate, "usr_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != (tags.Frequency{Name: "go", Count: 1}) {
		t.Fatalf("private tags = %v", got)
	}

	_, err = svc.Tags(asUser("usr_2"), tags.ScopeUserPrivate, "usr_1")
	assertKind(t, err, apperrors.KindForbidden)

	_, err = svc.Tags(asUser("usr_1"), "everyone", "usr_1")
	assertKind(t, err, apperrors.KindInvalidInput)
}

func TestServiceUsedTags(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.UsedTags(asUser("usr_1"), "usr_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Public) != 3 || len(got.Private) != 1 {
		t.Fatalf("used tags = %+v", got)
	}
}

func TestServiceFeed(t *testing.T) {
	svc, data := seededService(t)
	ctx := asUser("usr_3")

	got, err := svc.Feed(ctx, "usr_3", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("feed without preferences = %v", ids(got))
	}

	if err := data.Upsert(ctx, &userdata.Data{
		UserID:      "usr_3",
		WatchedTags: []string{"go", "python"},
		IgnoredTags: []string{"concurrency"},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err = svc.Feed(ctx, "usr_3", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalIDs(t, got, idPyPublic, idGoPublic)
}

func TestServicePinned(t *testing.T) {
	svc, data := seededService(t)
	ctx := asUser("usr_1")

	if err := data.Upsert(ctx, &userdata.Data{
		UserID: "usr_1",
		Pinned: []string{idGoPrivate, "bogus", idOtherPriv, idOtherOwner},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := svc.Pinned(ctx, "usr_1", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]bool{idGoPrivate: true, idOtherOwner: true}
	if len(got) != len(want) {
		t.Fatalf("pinned = %v", ids(got))
	}
	for _, s := range got {
		if !want[s.ID] {
			t.Fatalf("unexpected pinned snippet %s", s.ID)
		}
	}

	got, err = svc.Pinned(ctx, "usr_1", 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("second page = %v", ids(got))
	}
}

func TestServiceHugePageIsEmpty(t *testing.T) {
	svc, data := seededService(t)
	ctx := asUser("usr_1")
	const page = 2305843009213693953

	got, err := svc.Search(context.Background(), SearchInput{Query: "[go]", Page: page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("search = %v", ids(got))
	}

	if err := data.Upsert(ctx, &userdata.Data{UserID: "usr_1", Pinned: []string{idGoPublic}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = svc.Pinned(ctx, "usr_1", page, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("pinned = %v", ids(got))
	}
}

func TestServiceCreateDefaults(t *testing.T) {
	store := &storeStub{}
	svc := &Service{Store: store, IDGenerator: func() string { return idGoPublic }}

	var got *Snippet
	store.insertFn = func(ctx context.Context, s *Snippet) error {
		got = s
		return nil
	}

	snippet, err := svc.Create(asUser("usr_1"), CreateSnippetRequest{
		Title:        "  hello  ",
		Language:     "python",
		CodeSnippets: []CodeBlock{{Code: "print('hi')"}},
		Tags:         []string{"py", " ", "demo "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || snippet.ID != idGoPublic {
		t.Fatalf("expected store insert with generated id")
	}
	if snippet.UserID != "usr_1" || snippet.Title != "hello" {
		t.Fatalf("unexpected snippet: %+v", snippet)
	}
	if len(snippet.Tags) != 2 || snippet.Tags[1] != "demo" {
		t.Fatalf("tags = %v", snippet.Tags)
	}
}

func TestServiceCreateErrors(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	_, err := svc.Create(context.Background(), CreateSnippetRequest{Title: "x", CodeSnippets: []CodeBlock{{Code: "x"}}})
	assertKind(t, err, apperrors.KindUnauthorized)

	_, err = svc.Create(asUser("usr_1"), CreateSnippetRequest{Title: " "})
	assertKind(t, err, apperrors.KindInvalidInput)

	svc.Store = &storeStub{insertFn: func(ctx context.Context, s *Snippet) error { return ErrConflict }}
	_, err = svc.Create(asUser("usr_1"), CreateSnippetRequest{Title: "x", CodeSnippets: []CodeBlock{{Code: "x"}}})
	assertKind(t, err, apperrors.KindConflict)
}

func TestCacheKeyDistinguishesPages(t *testing.T) {
	a := &search.Compiled{Filter: search.Filter{Public: search.Bool(true)}, Page: search.NewPage(1, 5)}
	b := &search.Compiled{Filter: search.Filter{Public: search.Bool(true)}, Page: search.NewPage(2, 5)}
	if cacheKey(a) == cacheKey(b) {
		t.Fatal("pages must not share a cache key")
	}
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error kind %s", kind)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperrors.Error, got %T", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
}
