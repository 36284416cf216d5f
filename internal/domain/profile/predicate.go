package profile

import (
	"strings"

	"github.com/khoahotran/profile-directory/pkg/apperror"
)

// Predicate is a store-agnostic filter. With AnySkills set it matches
// profiles having a skill that contains any token. Otherwise an empty Text
// matches everything and a non-empty Text matches on name, email or any
// skill. All comparisons are case-insensitive substring checks.
type Predicate struct {
	Text      string
	AnySkills []string
}

func (p Predicate) IsSkillSearch() bool {
	return p.AnySkills != nil
}

func (p Predicate) MatchesAll() bool {
	return !p.IsSkillSearch() && p.Text == ""
}

// BuildListPredicate is used by listing. search is taken verbatim.
func BuildListPredicate(search string) Predicate {
	return Predicate{Text: search}
}

// ParseSkillTokens splits raw on commas and trims each token. Empty tokens are
// kept and match literally.
func ParseSkillTokens(raw string) ([]string, error) {
	if raw == "" {
		return nil, apperror.NewMissingParameter("skills")
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, len(parts))
	for i, part := range parts {
		tokens[i] = strings.TrimSpace(part)
	}
	return tokens, nil
}

func BuildSkillPredicate(tokens []string) Predicate {
	if tokens == nil {
		tokens = []string{}
	}
	return Predicate{AnySkills: tokens}
}

func (p Predicate) Matches(pr *Profile) bool {
	if p.IsSkillSearch() {
		for _, token := range p.AnySkills {
			if anyContains(pr.Skills, token) {
				return true
			}
		}
		return false
	}
	if p.Text == "" {
		return true
	}
	return containsFold(pr.Name, p.Text) ||
		containsFold(pr.Email, p.Text) ||
		anyContains(pr.Skills, p.Text)
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
