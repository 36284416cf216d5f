package profile

import (
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/validation"
)

var entryValidator = validation.New()

// CreateInput is the create payload. Sequences may be omitted.
type CreateInput struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Education []EducationEntry `json:"education"`
	Skills    []string         `json:"skills"`
	Projects  []ProjectEntry   `json:"projects"`
	Work      []WorkEntry      `json:"work"`
	Links     *LinkSet         `json:"links"`
}

// ValidateForCreate checks required fields and nested entries and returns a
// profile ready for insertion. It never touches the store.
func ValidateForCreate(in CreateInput) (*Profile, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	var links LinkSet
	if in.Links != nil {
		links = *in.Links
	}
	if links.GitHub == "" {
		missing = append(missing, "links.github")
	}
	if links.LinkedIn == "" {
		missing = append(missing, "links.linkedin")
	}
	if links.Portfolio == "" {
		missing = append(missing, "links.portfolio")
	}
	if len(missing) > 0 {
		return nil, apperror.NewMissingField(missing...)
	}

	p := &Profile{
		Name:      in.Name,
		Email:     in.Email,
		Education: in.Education,
		Skills:    in.Skills,
		Projects:  in.Projects,
		Work:      in.Work,
		Links:     links,
	}
	p.Normalize()

	if err := ValidateEntries(p.Education, p.Projects, p.Work); err != nil {
		return nil, err
	}
	return p, nil
}

type entrySet struct {
	Education []EducationEntry `json:"education" validate:"dive"`
	Projects  []ProjectEntry   `json:"projects" validate:"dive"`
	Work      []WorkEntry      `json:"work" validate:"dive"`
}

// ValidateEntries reports every nested entry missing a required field as a
// single StoreValidation error.
func ValidateEntries(education []EducationEntry, projects []ProjectEntry, work []WorkEntry) error {
	err := entryValidator.Struct(entrySet{Education: education, Projects: projects, Work: work})
	if err != nil {
		return apperror.NewStoreValidation(validation.FormatValidationErrors(err), err)
	}
	return nil
}
