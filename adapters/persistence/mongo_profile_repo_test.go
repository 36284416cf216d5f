package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

func TestPredicateFilterMatchAll(t *testing.T) {
	assert.Equal(t, bson.M{}, predicateFilter(profile.BuildListPredicate("")))
}

func TestPredicateFilterTextQuotesInput(t *testing.T) {
	re := bson.Regex{Pattern: `c\+\+`, Options: "i"}

	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"email": re},
		bson.M{"skills": re},
	}}, predicateFilter(profile.BuildListPredicate("c++")))
}

func TestPredicateFilterSkills(t *testing.T) {
	got := predicateFilter(profile.BuildSkillPredicate([]string{"go", ""}))

	assert.Equal(t, bson.M{"skills": bson.M{"$in": bson.A{
		bson.Regex{Pattern: "go", Options: "i"},
		bson.Regex{Pattern: "", Options: "i"},
	}}}, got)
}

func TestPatchSetDocument(t *testing.T) {
	now := time.Now()
	skills := []string{}

	set := patchSetDocument(profile.Patch{Skills: &skills, UpdatedAt: now})

	assert.Equal(t, bson.M{"skills": []string{}, "updatedAt": now}, set)
}

func TestProfileDocumentRoundTrip(t *testing.T) {
	p := &profile.Profile{Name: "n", Email: "e", Links: profile.LinkSet{GitHub: "g"}}
	doc := toDocument(p)
	doc.ID = bson.NewObjectID()

	back := doc.toEntity()

	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, "g", back.Links.GitHub)
	assert.NotNil(t, back.Skills)
}
