package service

import (
	"context"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

type ListKey struct {
	Page   int
	Limit  int
	Search string
}

type CachedPage struct {
	Profiles []*profile.Profile `json:"profiles"`
	Total    int64              `json:"total"`
}

// ListCache stores list query results until the next Invalidate.
// Get returns a nil page on a miss, along with the generation it looked in.
// Set must be given that generation so a page read before an Invalidate is
// never stored where later readers look.
type ListCache interface {
	Get(ctx context.Context, key ListKey) (*CachedPage, int64, error)
	Set(ctx context.Context, key ListKey, generation int64, page CachedPage) error
	Invalidate(ctx context.Context) error
}
