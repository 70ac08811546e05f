package snippets

import (
	"context"
	"time"

	"github.com/PabloPavan/snipmark_api/internal/tags"
)

// Cache holds public search results. Keys are built by the service from the
// compiled query.
type Cache interface {
	GetOne(ctx context.Context, key string) (*Snippet, bool, error)
	SetOne(ctx context.Context, key string, s *Snippet, ttl time.Duration) error
	GetList(ctx context.Context, key string) ([]*Snippet, bool, error)
	SetList(ctx context.Context, key string, snippets []*Snippet, ttl time.Duration) error
	GetTags(ctx context.Context, key string) ([]tags.Frequency, bool, error)
	SetTags(ctx context.Context, key string, freq []tags.Frequency, ttl time.Duration) error
}
