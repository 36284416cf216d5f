package profile

import (
	"time"

	"github.com/khoahotran/profile-directory/pkg/apperror"
)

// LinkSetInput keeps sub-field presence from the update payload.
type LinkSetInput struct {
	GitHub    *string `json:"github"`
	LinkedIn  *string `json:"linkedin"`
	Portfolio *string `json:"portfolio"`
}

// UpdateInput is the partial update payload. A nil field was absent (or
// null) in the request and is left untouched. Email is not updatable.
type UpdateInput struct {
	Name      *string           `json:"name"`
	Education *[]EducationEntry `json:"education"`
	Skills    *[]string         `json:"skills"`
	Projects  *[]ProjectEntry   `json:"projects"`
	Work      *[]WorkEntry      `json:"work"`
	Links     *LinkSetInput     `json:"links"`
}

// Patch holds the staged top-level fields of an update. UpdatedAt is always set.
type Patch struct {
	Name      *string
	Education *[]EducationEntry
	Skills    *[]string
	Projects  *[]ProjectEntry
	Work      *[]WorkEntry
	Links     *LinkSet
	UpdatedAt time.Time
}

// BuildPatch stages every supplied field. Links are replaced as a whole.
func BuildPatch(in UpdateInput, now time.Time) (Patch, error) {
	patch := Patch{UpdatedAt: now}

	if in.Name != nil {
		name := *in.Name
		patch.Name = &name
	}
	if in.Education != nil {
		education := append([]EducationEntry{}, (*in.Education)...)
		patch.Education = &education
	}
	if in.Skills != nil {
		skills := append([]string{}, (*in.Skills)...)
		patch.Skills = &skills
	}
	if in.Projects != nil {
		projects := append([]ProjectEntry{}, (*in.Projects)...)
		for i := range projects {
			if projects[i].Technologies == nil {
				projects[i].Technologies = []string{}
			}
		}
		patch.Projects = &projects
	}
	if in.Work != nil {
		work := append([]WorkEntry{}, (*in.Work)...)
		patch.Work = &work
	}
	if in.Links != nil {
		patch.Links = &LinkSet{
			GitHub:    deref(in.Links.GitHub),
			LinkedIn:  deref(in.Links.LinkedIn),
			Portfolio: deref(in.Links.Portfolio),
		}
	}

	if patch.IsEmpty() {
		return Patch{}, apperror.NewNoOpUpdate()
	}
	return patch, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsEmpty reports whether nothing besides UpdatedAt is staged.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the staged top-level field names, excluding updatedAt.
func (p Patch) Fields() []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Education != nil {
		fields = append(fields, "education")
	}
	if p.Skills != nil {
		fields = append(fields, "skills")
	}
	if p.Projects != nil {
		fields = append(fields, "projects")
	}
	if p.Work != nil {
		fields = append(fields, "work")
	}
	if p.Links != nil {
		fields = append(fields, "links")
	}
	return fields
}

// Validate applies the same rules the store enforces on staged fields.
func (p Patch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return apperror.NewStoreValidation([]string{"name is required"}, nil)
	}
	var (
		education []EducationEntry
		projects  []ProjectEntry
		work      []WorkEntry
	)
	if p.Education != nil {
		education = *p.Education
	}
	if p.Projects != nil {
		projects = *p.Projects
	}
	if p.Work != nil {
		work = *p.Work
	}
	return ValidateEntries(education, projects, work)
}

// ApplyTo writes the staged fields onto pr.
func (p Patch) ApplyTo(pr *Profile) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Education != nil {
		pr.Education = append([]EducationEntry{}, (*p.Education)...)
	}
	if p.Skills != nil {
		pr.Skills = append([]string{}, (*p.Skills)...)
	}
	if p.Projects != nil {
		pr.Projects = append([]ProjectEntry{}, (*p.Projects)...)
	}
	if p.Work != nil {
		pr.Work = append([]WorkEntry{}, (*p.Work)...)
	}
	if p.Links != nil {
		pr.Links = *p.Links
	}
	pr.UpdatedAt = p.UpdatedAt
}
