package profile

import (
	"context"
	"time"
)

type EducationEntry struct {
	Institution string  `json:"institution" bson:"institution" validate:"required"`
	Degree      string  `json:"degree" bson:"degree" validate:"required"`
	Field       string  `json:"field" bson:"field" validate:"required"`
	StartDate   string  `json:"startDate" bson:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" bson:"endDate" validate:"required"`
	GPA         *string `json:"gpa,omitempty" bson:"gpa,omitempty"`
}

type ProjectLinks struct {
	GitHub *string `json:"github,omitempty" bson:"github,omitempty"`
	Live   *string `json:"live,omitempty" bson:"live,omitempty"`
}

type ProjectEntry struct {
	Title        string       `json:"title" bson:"title" validate:"required"`
	Description  string       `json:"description" bson:"description" validate:"required"`
	Links        ProjectLinks `json:"links" bson:"links"`
	Technologies []string     `json:"technologies" bson:"technologies"`
	StartDate    string       `json:"startDate" bson:"startDate" validate:"required"`
	EndDate      *string      `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

type WorkEntry struct {
	Company     string  `json:"company" bson:"company" validate:"required"`
	Position    string  `json:"position" bson:"position" validate:"required"`
	Description string  `json:"description" bson:"description" validate:"required"`
	StartDate   string  `json:"startDate" bson:"startDate" validate:"required"`
	EndDate     *string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Location    string  `json:"location" bson:"location" validate:"required"`
}

// LinkSet sub-fields are required at creation. An update replaces the whole
// set, so a sub-field left out of the update ends up empty.
type LinkSet struct {
	GitHub    string `json:"github,omitempty" bson:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
}

type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Education []EducationEntry `json:"education"`
	Skills    []string         `json:"skills"`
	Projects  []ProjectEntry   `json:"projects"`
	Work      []WorkEntry      `json:"work"`
	Links     LinkSet          `json:"links"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Clone returns a deep copy so stores can hand out profiles without sharing
// backing arrays with their own state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = append([]string{}, p.Skills...)
	c.Education = append([]EducationEntry{}, p.Education...)
	c.Work = append([]WorkEntry{}, p.Work...)
	c.Projects = make([]ProjectEntry, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Technologies = append([]string{}, pr.Technologies...)
		c.Projects[i] = pr
	}
	return &c
}

// Normalize replaces nil sequences with empty ones.
func (p *Profile) Normalize() {
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []ProjectEntry{}
	}
	if p.Work == nil {
		p.Work = []WorkEntry{}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
}

type Sort int

const (
	// SortNatural leaves ordering to the store.
	SortNatural Sort = iota
	// SortNewestFirst orders by createdAt descending.
	SortNewestFirst
)

// Query selects profiles matching Predicate. Limit 0 means no limit.
type Query struct {
	Predicate Predicate
	Skip      int
	Limit     int
	Sort      Sort
}

// Repository implementations return *apperror.AppError values: DuplicateEmail
// on a uniqueness violation, InvalidIdentifier for ids the store cannot parse,
// StoreValidation for rejected documents, Unexpected otherwise.
type Repository interface {
	// FindByEmail returns nil, nil when no profile has the email.
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	// Insert assigns the id and returns the stored profile.
	Insert(ctx context.Context, p *Profile) (*Profile, error)
	// FindByID returns nil, nil when the id is well-formed but unknown.
	FindByID(ctx context.Context, id string) (*Profile, error)
	// UpdateByID applies the staged fields and returns the post-update
	// profile, or nil, nil when no profile has the id.
	UpdateByID(ctx context.Context, id string, patch Patch) (*Profile, error)
	// Query returns one window of matches plus the total match count.
	Query(ctx context.Context, q Query) ([]*Profile, int64, error)
}
