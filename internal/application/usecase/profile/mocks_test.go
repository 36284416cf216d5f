package profile

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) Insert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateByID(ctx context.Context, id string, patch profile.Patch) (*profile.Profile, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) Query(ctx context.Context, q profile.Query) ([]*profile.Profile, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*profile.Profile), args.Get(1).(int64), args.Error(2)
}

type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) Get(ctx context.Context, key service.ListKey) (*service.CachedPage, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*service.CachedPage), args.Get(1).(int64), args.Error(2)
}

func (m *MockListCache) Set(ctx context.Context, key service.ListKey, generation int64, page service.CachedPage) error {
	return m.Called(ctx, key, generation, page).Error(0)
}

func (m *MockListCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProfileEvent(ctx context.Context, evt profile.Event) error {
	return m.Called(ctx, evt).Error(0)
}
