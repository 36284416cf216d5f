package profile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

type SearchBySkillsInput struct {
	Skills string
}

type SearchBySkillsOutput struct {
	MatchCount        int                `json:"matchCount"`
	Profiles          []*profile.Profile `json:"profiles"`
	ParsedSkillTokens []string           `json:"parsedSkillTokens"`
}

// ExecuteSearchBySkills returns every profile with a skill containing any of
// the comma separated tokens, in store order. No match is not an error.
func (uc *ProfileUseCase) ExecuteSearchBySkills(ctx context.Context, input SearchBySkillsInput) (out *SearchBySkillsOutput, err error) {
	ctx, span := tracer.Start(ctx, "ExecuteSearchBySkills")
	defer span.End()
	defer func(start time.Time) {
		if err != nil {
			span.RecordError(err)
		}
		metrics.ObserveOperation("search_skills", start, err)
	}(time.Now())

	tokens, err := profile.ParseSkillTokens(input.Skills)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.StringSlice("skills", tokens))

	profiles, _, err := uc.profileRepo.Query(ctx, profile.Query{
		Predicate: profile.BuildSkillPredicate(tokens),
		Sort:      profile.SortNatural,
	})
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []*profile.Profile{}
	}

	return &SearchBySkillsOutput{
		MatchCount:        len(profiles),
		Profiles:          profiles,
		ParsedSkillTokens: tokens,
	}, nil
}
