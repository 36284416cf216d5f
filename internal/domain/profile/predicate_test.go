package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-directory/pkg/apperror"
)

func TestParseSkillTokens(t *testing.T) {
	tokens, err := ParseSkillTokens(" go , Rust,")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "Rust", ""}, tokens)

	tokens, err = ParseSkillTokens("go")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tokens)
}

func TestParseSkillTokensRequiresValue(t *testing.T) {
	_, err := ParseSkillTokens("")
	assert.True(t, errors.Is(err, apperror.ErrMissingParameter))
}

func TestListPredicateMatches(t *testing.T) {
	p := &Profile{Name: "Grace Hopper", Email: "grace@navy.mil", Skills: []string{"COBOL", "Compilers"}}

	cases := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"grace", true},
		{"HOPPER", true},
		{"navy", true},
		{"cob", true},
		{"golang", false},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildListPredicate(tc.search).Matches(p))
		})
	}
}

func TestSkillPredicateMatches(t *testing.T) {
	gopher := &Profile{Name: "Gopher", Skills: []string{"Golang", "Docker"}}
	rustacean := &Profile{Name: "go person", Skills: []string{"Rust"}}
	noSkills := &Profile{Name: "Empty", Skills: []string{}}

	pred := BuildSkillPredicate([]string{"go"})
	assert.True(t, pred.Matches(gopher))
	assert.False(t, pred.Matches(rustacean), "skill search ignores name")

	pred = BuildSkillPredicate([]string{"python", "rust"})
	assert.False(t, pred.Matches(gopher))
	assert.True(t, pred.Matches(rustacean))

	pred = BuildSkillPredicate([]string{""})
	assert.True(t, pred.Matches(gopher))
	assert.False(t, pred.Matches(noSkills))
}

func TestPredicateModes(t *testing.T) {
	assert.True(t, BuildListPredicate("").MatchesAll())
	assert.False(t, BuildListPredicate("x").MatchesAll())
	assert.True(t, BuildSkillPredicate(nil).IsSkillSearch())
	assert.False(t, BuildSkillPredicate(nil).Matches(&Profile{Skills: []string{"go"}}))
}
