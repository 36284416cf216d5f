package profile

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/pagination"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo  profile.Repository
	cache        service.ListCache
	publisher    service.EventPublisher
	logger       logger.Logger
	defaultLimit int
	maxLimit     int
	now          func() time.Time
	inflight     sync.WaitGroup
}

type Option func(*ProfileUseCase)

// WithListCache enables caching of list pages. nil disables it.
func WithListCache(c service.ListCache) Option {
	return func(uc *ProfileUseCase) { uc.cache = c }
}

// WithEventPublisher enables profile events. nil disables them.
func WithEventPublisher(p service.EventPublisher) Option {
	return func(uc *ProfileUseCase) { uc.publisher = p }
}

func WithPageLimits(defaultLimit, maxLimit int) Option {
	return func(uc *ProfileUseCase) {
		uc.defaultLimit = defaultLimit
		uc.maxLimit = maxLimit
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *ProfileUseCase) { uc.now = now }
}

func NewProfileUseCase(repo profile.Repository, log logger.Logger, opts ...Option) *ProfileUseCase {
	uc := &ProfileUseCase{
		profileRepo:  repo,
		logger:       log,
		defaultLimit: pagination.DefaultLimit,
		maxLimit:     pagination.MaxLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Wait blocks until every pending event publish has finished.
func (uc *ProfileUseCase) Wait() {
	uc.inflight.Wait()
}

// afterMutation drops cached pages right away so this process never serves a
// stale list, then publishes evt in the background.
func (uc *ProfileUseCase) afterMutation(ctx context.Context, evt profile.Event) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate list cache", zap.String("profile_id", evt.ProfileID), zap.Error(err))
		}
	}
	if uc.publisher == nil {
		return
	}

	// keep the trace, drop the request deadline
	pubCtx := trace.ContextWithSpanContext(context.Background(), trace.SpanContextFromContext(ctx))

	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		if err := uc.publisher.PublishProfileEvent(pubCtx, evt); err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("profile_id", evt.ProfileID),
				zap.String("event_type", string(evt.Type)))
		}
	}()
}
