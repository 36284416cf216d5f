package persistence

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const profileCollection = "profiles"

type profileDocument struct {
	ID        bson.ObjectID            `bson:"_id,omitempty"`
	Name      string                   `bson:"name"`
	Email     string                   `bson:"email"`
	Education []profile.EducationEntry `bson:"education"`
	Skills    []string                 `bson:"skills"`
	Projects  []profile.ProjectEntry   `bson:"projects"`
	Work      []profile.WorkEntry      `bson:"work"`
	Links     profile.LinkSet          `bson:"links"`
	CreatedAt time.Time                `bson:"createdAt"`
	UpdatedAt time.Time                `bson:"updatedAt"`
}

func toDocument(p *profile.Profile) profileDocument {
	return profileDocument{
		Name:      p.Name,
		Email:     p.Email,
		Education: p.Education,
		Skills:    p.Skills,
		Projects:  p.Projects,
		Work:      p.Work,
		Links:     p.Links,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d profileDocument) toEntity() *profile.Profile {
	p := &profile.Profile{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Education: d.Education,
		Skills:    d.Skills,
		Projects:  d.Projects,
		Work:      d.Work,
		Links:     d.Links,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	p.Normalize()
	return p
}

type mongoProfileRepo struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewMongoProfileRepo(db *mongo.Database, log logger.Logger) profile.Repository {
	return &mongoProfileRepo{
		collection: db.Collection(profileCollection),
		logger:     log,
	}
}

// EnsureProfileIndexes creates the unique email index that guards against
// concurrent duplicate creates, plus the createdAt index used by listing.
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
	}
	_, err := db.Collection(profileCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *mongoProfileRepo) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.NewUnexpected("failed to find profile by email", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoProfileRepo) Insert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	doc := toDocument(p)
	doc.ID = bson.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.NewDuplicateEmail(p.Email)
		}
		return nil, apperror.NewUnexpected("failed to insert profile", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoProfileRepo) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	var doc profileDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.NewUnexpected("failed to find profile by id", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoProfileRepo) UpdateByID(ctx context.Context, id string, patch profile.Patch) (*profile.Profile, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc profileDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patchSetDocument(patch)}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.NewUnexpected("failed to update profile", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoProfileRepo) Query(ctx context.Context, q profile.Query) ([]*profile.Profile, int64, error) {
	filter := predicateFilter(q.Predicate)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewUnexpected("failed to count profiles", err)
	}

	opts := options.Find()
	if q.Sort == profile.SortNewestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperror.NewUnexpected("failed to query profiles", err)
	}
	defer cursor.Close(ctx)

	var docs []profileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, apperror.NewUnexpected("failed to decode profiles", err)
	}

	profiles := make([]*profile.Profile, 0, len(docs))
	for _, d := range docs {
		profiles = append(profiles, d.toEntity())
	}
	r.logger.Debug("Profile query executed", zap.Int("returned", len(profiles)), zap.Int64("total", total))
	return profiles, total, nil
}

// predicateFilter translates a predicate into a case-insensitive regex
// filter. Tokens are quoted so they match literally.
func predicateFilter(p profile.Predicate) bson.M {
	if p.IsSkillSearch() {
		patterns := make(bson.A, 0, len(p.AnySkills))
		for _, token := range p.AnySkills {
			patterns = append(patterns, containsRegex(token))
		}
		return bson.M{"skills": bson.M{"$in": patterns}}
	}
	if p.Text == "" {
		return bson.M{}
	}
	re := containsRegex(p.Text)
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"email": re},
		bson.M{"skills": re},
	}}
}

func containsRegex(s string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func patchSetDocument(patch profile.Patch) bson.M {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Education != nil {
		set["education"] = *patch.Education
	}
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.Projects != nil {
		set["projects"] = *patch.Projects
	}
	if patch.Work != nil {
		set["work"] = *patch.Work
	}
	if patch.Links != nil {
		set["links"] = *patch.Links
	}
	return set
}
