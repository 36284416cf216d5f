package http

import (
	"time"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/pagination"
)

// Profile DTOs

// CreateProfileRequest mirrors the create payload. Sequences may be omitted.
type CreateProfileRequest struct {
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Education []profile.EducationEntry `json:"education"`
	Skills    []string                 `json:"skills"`
	Projects  []profile.ProjectEntry   `json:"projects"`
	Work      []profile.WorkEntry      `json:"work"`
	Links     *profile.LinkSet         `json:"links"`
}

func (req CreateProfileRequest) ToDomain() profile.CreateInput {
	return profile.CreateInput{
		Name:      req.Name,
		Email:     req.Email,
		Education: req.Education,
		Skills:    req.Skills,
		Projects:  req.Projects,
		Work:      req.Work,
		Links:     req.Links,
	}
}

// UpdateProfileRequest keeps key presence: a nil field was not sent (or sent
// as null). email is not accepted here.
type UpdateProfileRequest struct {
	Name      *string                   `json:"name"`
	Education *[]profile.EducationEntry `json:"education"`
	Skills    *[]string                 `json:"skills"`
	Projects  *[]profile.ProjectEntry   `json:"projects"`
	Work      *[]profile.WorkEntry      `json:"work"`
	Links     *profile.LinkSetInput     `json:"links"`
}

func (req UpdateProfileRequest) ToDomain() profile.UpdateInput {
	return profile.UpdateInput{
		Name:      req.Name,
		Education: req.Education,
		Skills:    req.Skills,
		Projects:  req.Projects,
		Work:      req.Work,
		Links:     req.Links,
	}
}

type ProfileDTO struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Education []profile.EducationEntry `json:"education"`
	Skills    []string                 `json:"skills"`
	Projects  []profile.ProjectEntry   `json:"projects"`
	Work      []profile.WorkEntry      `json:"work"`
	Links     profile.LinkSet          `json:"links"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	c := p.Clone()
	c.Normalize()
	return ProfileDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Education: c.Education,
		Skills:    c.Skills,
		Projects:  c.Projects,
		Work:      c.Work,
		Links:     c.Links,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = ToProfileDTO(p)
	}
	return dtos
}

type ProfileListDTO struct {
	Profiles   []ProfileDTO    `json:"profiles"`
	Pagination pagination.Meta `json:"pagination"`
}

type SkillSearchDTO struct {
	MatchCount        int          `json:"matchCount"`
	Profiles          []ProfileDTO `json:"profiles"`
	ParsedSkillTokens []string     `json:"parsedSkillTokens"`
}
