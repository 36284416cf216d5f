package profile

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

type UpdateProfileInput struct {
	ID      string
	Payload profile.UpdateInput
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdate applies a partial update. The target must exist before the
// payload is looked at, so an unknown id wins over an empty payload.
func (uc *ProfileUseCase) ExecuteUpdate(ctx context.Context, input UpdateProfileInput) (out *UpdateProfileOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecuteUpdate")
	defer span.End()
	defer func(start time.Time) {
		if err != nil {
			span.RecordError(err)
		}
		metrics.ObserveOperation("update", start, err)
	}(time.Now())

	span.SetAttributes(attribute.String("profile_id", input.ID))

	existing, err := uc.profileRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFound("profile", input.ID)
	}

	patch, err := profile.BuildPatch(input.Payload, uc.now())
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.profileRepo.UpdateByID(ctx, input.ID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// deleted between the lookup and the update
		return nil, apperror.NewNotFound("profile", input.ID)
	}

	fields := patch.Fields()
	span.SetAttributes(attribute.StringSlice("fields", fields))
	uc.logger.Info("Profile updated",
		zap.String("profile_id", updated.ID),
		zap.String("fields", strings.Join(fields, ",")))

	uc.afterMutation(ctx, profile.NewUpdatedEvent(updated, existing.Skills, patch.UpdatedAt))
	return &UpdateProfileOutput{Profile: updated}, nil
}
