package service

import (
	"context"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt profile.Event) error
}
