package profile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

type GetProfileInput struct {
	ID string
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGet(ctx context.Context, input GetProfileInput) (out *GetProfileOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecuteGet")
	defer span.End()
	defer func(start time.Time) {
		if err != nil {
			span.RecordError(err)
		}
		metrics.ObserveOperation("get", start, err)
	}(time.Now())

	span.SetAttributes(attribute.String("profile_id", input.ID))

	p, err := uc.profileRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("profile", input.ID)
	}
	return &GetProfileOutput{Profile: p}, nil
}
