package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

type MockSkillIndex struct {
	mock.Mock
}

func (m *MockSkillIndex) Apply(ctx context.Context, added, removed []string) error {
	return m.Called(ctx, added, removed).Error(0)
}

func (m *MockSkillIndex) Top(ctx context.Context, n int) ([]service.SkillCount, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SkillCount), args.Error(1)
}

func TestSkillDelta(t *testing.T) {
	added, removed := SkillDelta([]string{"Go", "Docker", " "}, []string{"go", "Rust", "rust", "Kafka"})

	assert.Equal(t, []string{"kafka", "rust"}, added)
	assert.Equal(t, []string{"docker"}, removed)

	added, removed = SkillDelta(nil, nil)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestExecuteApplyEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply delta of an update", func(t *testing.T) {
		idx := new(MockSkillIndex)
		uc := NewSkillUseCase(idx, logger.NewNopLogger())
		idx.On("Apply", mock.Anything, []string{"rust"}, []string{"docker"}).Return(nil)

		err := uc.ExecuteApplyEvent(ctx, profile.Event{
			Type:           profile.EventUpdated,
			Skills:         []string{"Go", "Rust"},
			PreviousSkills: []string{"go", "Docker"},
		})

		require.NoError(t, err)
		idx.AssertExpectations(t)
	})

	t.Run("Should skip index when skills are unchanged", func(t *testing.T) {
		idx := new(MockSkillIndex)
		uc := NewSkillUseCase(idx, logger.NewNopLogger())

		err := uc.ExecuteApplyEvent(ctx, profile.Event{Skills: []string{"Go"}, PreviousSkills: []string{"go"}})

		require.NoError(t, err)
		idx.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should wrap index failures", func(t *testing.T) {
		idx := new(MockSkillIndex)
		uc := NewSkillUseCase(idx, logger.NewNopLogger())
		idx.On("Apply", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		err := uc.ExecuteApplyEvent(ctx, profile.Event{Skills: []string{"Go"}})

		assert.True(t, errors.Is(err, apperror.ErrUnexpected))
	})
}

func TestExecutePopular(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default and cap the limit", func(t *testing.T) {
		idx := new(MockSkillIndex)
		uc := NewSkillUseCase(idx, logger.NewNopLogger())
		idx.On("Top", mock.Anything, 10).Return([]service.SkillCount{{Skill: "go", Count: 3}}, nil)
		idx.On("Top", mock.Anything, 100).Return([]service.SkillCount{}, nil)

		out, err := uc.ExecutePopular(ctx, PopularSkillsInput{})
		require.NoError(t, err)
		assert.Equal(t, []service.SkillCount{{Skill: "go", Count: 3}}, out.Skills)

		_, err = uc.ExecutePopular(ctx, PopularSkillsInput{Limit: "1000"})
		require.NoError(t, err)
		idx.AssertExpectations(t)
	})

	t.Run("Should return empty list without an index", func(t *testing.T) {
		uc := NewSkillUseCase(nil, logger.NewNopLogger())

		out, err := uc.ExecutePopular(ctx, PopularSkillsInput{Limit: "5"})

		require.NoError(t, err)
		assert.Empty(t, out.Skills)
		assert.NotNil(t, out.Skills)
	})
}

func operationCount(t *testing.T, operation, outcome string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "profile_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestExecutePopularRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()

	successBefore := operationCount(t, "popular_skills", "success")
	failureBefore := operationCount(t, "popular_skills", "unexpected")

	_, err := NewSkillUseCase(nil, log).ExecutePopular(ctx, PopularSkillsInput{Limit: "abc"})
	require.NoError(t, err)

	idx := new(MockSkillIndex)
	idx.On("Top", mock.Anything, 10).Return(nil, errors.New("redis down"))
	_, err = NewSkillUseCase(idx, log).ExecutePopular(ctx, PopularSkillsInput{})
	require.Error(t, err)

	assert.Equal(t, successBefore+1, operationCount(t, "popular_skills", "success"))
	assert.Equal(t, failureBefore+1, operationCount(t, "popular_skills", "unexpected"))
}
