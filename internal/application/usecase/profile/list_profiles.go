package profile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/metrics"
	"github.com/khoahotran/profile-directory/pkg/pagination"
)

// ListProfilesInput carries the raw query values.
type ListProfilesInput struct {
	Page   string
	Limit  string
	Search string
}

type ListProfilesOutput struct {
	Profiles   []*profile.Profile `json:"profiles"`
	Pagination pagination.Meta    `json:"pagination"`
}

// ExecuteList returns one page of profiles, newest first. An empty page is
// reported as not found, including pages past the end of a non-empty set.
func (uc *ProfileUseCase) ExecuteList(ctx context.Context, input ListProfilesInput) (out *ListProfilesOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecuteList")
	defer span.End()
	defer func(start time.Time) {
		if err != nil {
			span.RecordError(err)
		}
		metrics.ObserveOperation("list", start, err)
	}(time.Now())

	params := pagination.Parse(input.Page, input.Limit, uc.defaultLimit, uc.maxLimit)
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("limit", params.Limit),
		attribute.String("search", input.Search),
	)

	profiles, total, err := uc.queryPage(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperror.NewNotFound("profiles", fmt.Sprintf("page %d", params.Page))
	}

	return &ListProfilesOutput{
		Profiles:   profiles,
		Pagination: pagination.NewMeta(params, total),
	}, nil
}

func (uc *ProfileUseCase) queryPage(ctx context.Context, params pagination.Params, search string) ([]*profile.Profile, int64, error) {
	key := service.ListKey{Page: params.Page, Limit: params.Limit, Search: search}
	cacheable := false
	var gen int64
	if uc.cache != nil {
		cached, g, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("List cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached.Profiles, cached.Total, nil
		} else {
			cacheable, gen = true, g
		}
	}

	profiles, total, err := uc.profileRepo.Query(ctx, profile.Query{
		Predicate: profile.BuildListPredicate(search),
		Skip:      params.Skip(),
		Limit:     params.Limit,
		Sort:      profile.SortNewestFirst,
	})
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if err := uc.cache.Set(ctx, key, gen, service.CachedPage{Profiles: profiles, Total: total}); err != nil {
			uc.logger.Warn("List cache write failed", zap.Error(err))
		}
	}
	return profiles, total, nil
}
