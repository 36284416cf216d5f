package profile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

type CreateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteCreate validates the payload, checks the email is free and inserts
// the profile. The store's unique index still decides a race between two
// concurrent creates with the same email.
func (uc *ProfileUseCase) ExecuteCreate(ctx context.Context, input profile.CreateInput) (out *CreateProfileOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecuteCreate")
	defer span.End()
	defer func(start time.Time) {
		if err != nil {
			span.RecordError(err)
		}
		metrics.ObserveOperation("create", start, err)
	}(time.Now())

	p, err := profile.ValidateForCreate(input)
	if err != nil {
		return nil, err
	}

	existing, err := uc.profileRepo.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateEmail(p.Email)
	}

	now := uc.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := uc.profileRepo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("profile_id", created.ID))
	uc.logger.Info("Profile created", zap.String("profile_id", created.ID))

	uc.afterMutation(ctx, profile.NewCreatedEvent(created, now))
	return &CreateProfileOutput{Profile: created}, nil
}
