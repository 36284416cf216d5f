package skill

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

var tracer = otel.Tracer("skill_usecase")

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

type SkillUseCase struct {
	index  service.SkillIndex
	logger logger.Logger
}

// NewSkillUseCase accepts a nil index; popular skills are then always empty.
func NewSkillUseCase(index service.SkillIndex, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{index: index, logger: log}
}

type PopularSkillsInput struct {
	Limit string
}

type PopularSkillsOutput struct {
	Skills []service.SkillCount `json:"skills"`
}

func (uc *SkillUseCase) ExecutePopular(ctx context.Context, input PopularSkillsInput) (out *PopularSkillsOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecutePopular")
	defer span.End()
	defer func(start time.Time) {
		metrics.ObserveOperation("popular_skills", start, err)
	}(time.Now())

	n, parseErr := strconv.Atoi(strings.TrimSpace(input.Limit))
	if parseErr != nil || n < 1 {
		n = defaultPopularLimit
	}
	if n > maxPopularLimit {
		n = maxPopularLimit
	}
	span.SetAttributes(attribute.Int("limit", n))

	if uc.index == nil {
		return &PopularSkillsOutput{Skills: []service.SkillCount{}}, nil
	}

	top, err := uc.index.Top(ctx, n)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewUnexpected("failed to read popular skills", err)
	}
	if top == nil {
		top = []service.SkillCount{}
	}
	return &PopularSkillsOutput{Skills: top}, nil
}

// ExecuteApplyEvent folds one profile event into the skill index.
func (uc *SkillUseCase) ExecuteApplyEvent(ctx context.Context, evt profile.Event) error {
	ctx, span := tracer.Start(ctx, "ExecuteApplyEvent")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile_id", evt.ProfileID),
		attribute.String("event_type", string(evt.Type)),
	)

	if uc.index == nil {
		return nil
	}

	added, removed := SkillDelta(evt.PreviousSkills, evt.Skills)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	if err := uc.index.Apply(ctx, added, removed); err != nil {
		span.RecordError(err)
		return apperror.NewUnexpected("failed to update skill index", err)
	}

	uc.logger.Debug("Skill index updated",
		zap.String("profile_id", evt.ProfileID),
		zap.Strings("added", added),
		zap.Strings("removed", removed))
	return nil
}

// SkillDelta compares two skill lists case-insensitively and returns the
// sorted, de-duplicated skills that appear only in next (added) or only in
// prev (removed). Blank skills are ignored.
func SkillDelta(prev, next []string) (added, removed []string) {
	before := normalizeSet(prev)
	after := normalizeSet(next)

	for s := range after {
		if _, ok := before[s]; !ok {
			added = append(added, s)
		}
	}
	for s := range before {
		if _, ok := after[s]; !ok {
			removed = append(removed, s)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func normalizeSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}
