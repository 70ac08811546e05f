package snippets

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/PabloPavan/snipmark_api/internal/apperrors"
	"github.com/PabloPavan/snipmark_api/internal/identity"
	"github.com/PabloPavan/snipmark_api/internal/search"
	"github.com/PabloPavan/snipmark_api/internal/tags"
	"github.com/PabloPavan/snipmark_api/internal/telemetry"
	"github.com/PabloPavan/snipmark_api/internal/userdata"
)

type Store interface {
	Find(ctx context.Context, f search.Filter, sort search.Sort, page search.Page) ([]*Snippet, error)
	FindOne(ctx context.Context, f search.Filter) (*Snippet, error)
	AggregateTags(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error)
	Insert(ctx context.Context, s *Snippet) error
}

type UserDataLookup interface {
	Get(ctx context.Context, userID string) (*userdata.Data, error)
}

type Service struct {
	Store        Store
	UserData     UserDataLookup
	Cache        Cache
	CacheTTL     time.Duration
	ListCacheTTL time.Duration
	TagsCacheTTL time.Duration
	IDGenerator  func() string
}

type SearchInput struct {
	Query   string
	Include string
	Page    int
	Limit   int
}

type UsedTags struct {
	Public  []tags.Frequency `json:"public"`
	Private []tags.Frequency `json:"private"`
}

// Search runs a query over public snippets. The caller's identity is not
// used; owner-scoped searches go through SearchUser.
func (s *Service) Search(ctx context.Context, in SearchInput) ([]*Snippet, error) {
	c, err := s.compile(in, search.Requester{}, "")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, c)
}

// SearchUser runs a query over userID's own snippets, public and private.
func (s *Service) SearchUser(ctx context.Context, userID string, in SearchInput) ([]*Snippet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.compile(in, search.Requester{UserID: userID}, "")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, c)
}

// Get looks up one public snippet. Query constraints in the input still
// apply, so a snippet that does not match them is not found.
func (s *Service) Get(ctx context.Context, id string, in SearchInput) (*Snippet, error) {
	c, err := s.compile(in, search.Requester{}, targetID(id))
	if err != nil {
		return nil, err
	}
	return s.one(ctx, c)
}

func (s *Service) GetUser(ctx context.Context, userID, id string, in SearchInput) (*Snippet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.compile(in, search.Requester{UserID: userID}, targetID(id))
	if err != nil {
		return nil, err
	}
	return s.one(ctx, c)
}

// Tagged lists public snippets carrying tag, newest first.
func (s *Service) Tagged(ctx context.Context, tag string, page, limit int) ([]*Snippet, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "tag is required")
	}
	c, err := search.Compile(search.CompileInput{
		Query: search.Query{Tags: []string{tag}},
		Page:  search.NewPage(page, limit),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to compile query", err)
	}
	return s.list(ctx, c)
}

// Export returns every snippet of userID, newest first, without paging.
func (s *Service) Export(ctx context.Context, userID string) ([]*Snippet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	c, err := search.Compile(search.CompileInput{
		Requester: search.Requester{UserID: userID},
		Page:      search.Unbounded(),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to compile query", err)
	}
	return s.list(ctx, c)
}

// Tags aggregates tag frequencies for a scope. Scopes other than "public"
// belong to userID and need the caller to be that user.
func (s *Service) Tags(ctx context.Context, scope, userID string) ([]tags.Frequency, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	cond, err := tags.ParseScope(scope, userID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "invalid tag scope")
	}
	if cond.UserID != "" {
		if err := authorize(ctx, cond.UserID); err != nil {
			return nil, err
		}
	}
	return s.aggregate(ctx, cond)
}

func (s *Service) UsedTags(ctx context.Context, userID string) (*UsedTags, error) {
	public, err := s.Tags(ctx, tags.ScopeUserPublic, userID)
	if err != nil {
		return nil, err
	}
	private, err := s.Tags(ctx, tags.ScopeUserPrivate, userID)
	if err != nil {
		return nil, err
	}
	return &UsedTags{Public: public, Private: private}, nil
}

// Feed lists public snippets tagged with any of the user's watched tags and
// none of the ignored ones.
func (s *Service) Feed(ctx context.Context, userID string, page, limit int) ([]*Snippet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	data, err := s.userData(ctx, userID)
	if err != nil || data == nil || len(data.WatchedTags) == 0 {
		return []*Snippet{}, err
	}

	c := &search.Compiled{
		Filter: search.Filter{
			Tags:        data.WatchedTags,
			TagMatch:    search.IncludeAny,
			ExcludeTags: data.IgnoredTags,
			Public:      search.Bool(true),
		},
		Mode: search.ModeList,
		Sort: search.SortCreatedDesc,
		Page: search.NewPage(page, limit),
	}
	return s.list(ctx, c)
}

// Pinned returns one page of the user's pinned snippets. Results come back
// in store order, not in pin order.
func (s *Service) Pinned(ctx context.Context, userID string, page, limit int) ([]*Snippet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	data, err := s.userData(ctx, userID)
	if err != nil || data == nil {
		return []*Snippet{}, err
	}

	p := search.NewPage(page, limit)
	start := min(p.Offset(), len(data.Pinned))
	end := min(start+p.Size, len(data.Pinned))

	ids := make([]string, 0, end-start)
	for _, raw := range data.Pinned[start:end] {
		if id, err := search.NormalizeID(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []*Snippet{}, nil
	}

	list, err := s.Store.Find(ctx, search.Filter{IDs: ids}, search.SortCreatedDesc, search.Unbounded())
	if err != nil {
		telemetry.LogError(ctx, "pinned lookup failed", telemetry.LogString("error", err.Error()))
		return nil, apperrors.New(apperrors.KindInternal, "failed to load pinned snippets")
	}

	visible := list[:0]
	for _, sn := range list {
		if sn.Public || sn.UserID == userID {
			visible = append(visible, sn)
		}
	}
	return visible, nil
}

func (s *Service) Create(ctx context.Context, req CreateSnippetRequest) (*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	userID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(userID) == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || len(req.CodeSnippets) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "title and code snippets are required")
	}
	snippetTags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			snippetTags = append(snippetTags, t)
		}
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	snippet := &Snippet{
		ID:           idGen(),
		Title:        title,
		Language:     strings.TrimSpace(req.Language),
		CodeSnippets: req.CodeSnippets,
		Tags:         snippetTags,
		UserID:       userID,
		Public:       req.Public,
		SourceURL:    strings.TrimSpace(req.SourceURL),
		CopiedFromID: strings.TrimSpace(req.CopiedFromID),
	}

	if err := s.Store.Insert(ctx, snippet); err != nil {
		telemetry.LogWarn(ctx, "snippet insert failed", telemetry.LogString("error", err.Error()))
		if IsConflict(err) {
			return nil, apperrors.New(apperrors.KindConflict, "snippet already exists")
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to create snippet")
	}
	return snippet, nil
}

func (s *Service) compile(in SearchInput, requester search.Requester, target string) (*search.Compiled, error) {
	include, err := search.ParseInclude(in.Include)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "include must be all or any")
	}

	c, err := search.Compile(search.CompileInput{
		Query:     search.Parse(strings.TrimSpace(in.Query)),
		Include:   include,
		Requester: requester,
		TargetID:  target,
		Page:      search.NewPage(in.Page, in.Limit),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, "not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to compile query", err)
	}
	return c, nil
}

func (s *Service) list(ctx context.Context, c *search.Compiled) ([]*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}

	ctx, span := telemetry.StartSpan(ctx, "snippets.find", compiledAttrs(c)...)
	defer span.End()
	telemetry.RecordSearch(ctx, c.Mode == search.ModeSingle, c.Sort.String(), c.Filter.MatchNone)

	if c.Filter.MatchNone {
		return []*Snippet{}, nil
	}

	cacheable := s.Cache != nil && c.Filter.PublicOnly()
	key := ""
	if cacheable {
		key = cacheKey(c)
		if cached, ok, err := s.Cache.GetList(ctx, key); err == nil && ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	list, err := s.Store.Find(ctx, c.Filter, c.Sort, c.Page)
	if err != nil {
		telemetry.LogError(ctx, "snippet search failed",
			telemetry.LogString("error", err.Error()),
			telemetry.LogString("search.sort", c.Sort.String()),
		)
		return nil, apperrors.New(apperrors.KindInternal, "failed to search snippets")
	}

	if cacheable && s.ListCacheTTL > 0 {
		_ = s.Cache.SetList(ctx, key, list, s.ListCacheTTL)
	}
	return list, nil
}

func (s *Service) one(ctx context.Context, c *search.Compiled) (*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}

	ctx, span := telemetry.StartSpan(ctx, "snippets.find_one", compiledAttrs(c)...)
	defer span.End()
	telemetry.RecordSearch(ctx, true, c.Sort.String(), c.Filter.MatchNone)

	if c.Filter.MatchNone {
		return nil, apperrors.New(apperrors.KindNotFound, "not found")
	}

	cacheable := s.Cache != nil && c.Filter.PublicOnly()
	key := ""
	if cacheable {
		key = cacheKey(c)
		if cached, ok, err := s.Cache.GetOne(ctx, key); err == nil && ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	snippet, err := s.Store.FindOne(ctx, c.Filter)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, "not found")
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to load snippet")
	}

	if cacheable && s.CacheTTL > 0 {
		_ = s.Cache.SetOne(ctx, key, snippet, s.CacheTTL)
	}
	return snippet, nil
}

func (s *Service) aggregate(ctx context.Context, cond tags.Condition) ([]tags.Frequency, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "snippets.aggregate_tags",
		attribute.Bool("tags.owner_scoped", cond.UserID != ""),
	)
	defer span.End()

	cacheable := s.Cache != nil && cond.Filter().PublicOnly()
	key := tagsCacheKey(cond)
	if cacheable {
		if cached, ok, err := s.Cache.GetTags(ctx, key); err == nil && ok {
			return cached, nil
		}
	}

	freq, err := s.Store.AggregateTags(ctx, cond)
	telemetry.RecordTagAggregation(ctx, cond.UserID != "", time.Since(start), err)
	if err != nil {
		telemetry.LogError(ctx, "tag aggregation failed", telemetry.LogString("error", err.Error()))
		return nil, apperrors.New(apperrors.KindInternal, "failed to aggregate tags")
	}

	if cacheable && s.TagsCacheTTL > 0 {
		_ = s.Cache.SetTags(ctx, key, freq, s.TagsCacheTTL)
	}
	return freq, nil
}

func (s *Service) userData(ctx context.Context, userID string) (*userdata.Data, error) {
	if s.UserData == nil {
		return nil, apperrors.New(apperrors.KindInternal, "user data store not configured")
	}
	data, err := s.UserData.Get(ctx, userID)
	if err != nil {
		if userdata.IsNotFound(err) {
			// first visit: nothing watched or pinned yet
			return nil, nil
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to load user data")
	}
	return data, nil
}

func authorize(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperrors.New(apperrors.KindInvalidInput, "user id is required")
	}
	if _, ok := identity.UserID(ctx); !ok {
		return apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}
	if !identity.CanAccess(ctx, ownerID) {
		return apperrors.New(apperrors.KindForbidden, "forbidden")
	}
	return nil
}

// targetID keeps an empty path id from turning a point lookup into a list.
func targetID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "-"
	}
	return id
}

func compiledAttrs(c *search.Compiled) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("search.sort", c.Sort.String()),
		attribute.Bool("search.text", c.Filter.HasText()),
		attribute.Int("search.tags", len(c.Filter.Tags)),
		attribute.Bool("search.public_only", c.Filter.PublicOnly()),
	}
}

func cacheKey(c *search.Compiled) string {
	f := c.Filter
	v := url.Values{}
	if len(f.Tags) > 0 {
		v["tag"] = f.Tags
		v.Set("tag_match", string(f.TagMatch))
	}
	if len(f.ExcludeTags) > 0 {
		v["exclude"] = f.ExcludeTags
	}
	if f.HasText() {
		v.Set("q", f.Text.Search)
		v.Set("q_match", string(f.Text.Match))
	}
	if f.UserID != "" {
		v.Set("user", f.UserID)
	}
	if f.Public != nil {
		v.Set("public", strconv.FormatBool(*f.Public))
	}
	if f.Language != "" {
		v.Set("lang", f.Language)
	}
	if f.Site != "" {
		v.Set("site", f.Site)
	}
	if f.ID != "" {
		v.Set("id", f.ID)
	}
	if c.Mode == search.ModeList {
		v.Set("sort", c.Sort.String())
		v.Set("page", strconv.Itoa(c.Page.Index))
		v.Set("size", strconv.Itoa(c.Page.Size))
	}
	return v.Encode()
}

func tagsCacheKey(cond tags.Condition) string {
	v := url.Values{}
	if cond.UserID != "" {
		v.Set("user", cond.UserID)
	}
	if cond.Public != nil {
		v.Set("public", strconv.FormatBool(*cond.Public))
	}
	return v.Encode()
}
