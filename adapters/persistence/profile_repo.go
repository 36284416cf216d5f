package persistence

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const profileColumns = "id, name, email, education, skills, projects, work, links, created_at, updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var id uuid.UUID
	var educationBytes, projectsBytes, workBytes, linksBytes []byte

	err := row.Scan(
		&id,
		&p.Name,
		&p.Email,
		&educationBytes,
		&p.Skills,
		&projectsBytes,
		&workBytes,
		&linksBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()

	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("profile_id", p.ID), zap.Error(err))
	}
	if err := json.Unmarshal(projectsBytes, &p.Projects); err != nil {
		r.logger.Warn("Failed to unmarshal projects", zap.String("profile_id", p.ID), zap.Error(err))
	}
	if err := json.Unmarshal(workBytes, &p.Work); err != nil {
		r.logger.Warn("Failed to unmarshal work", zap.String("profile_id", p.ID), zap.Error(err))
	}
	if err := json.Unmarshal(linksBytes, &p.Links); err != nil {
		r.logger.Warn("Failed to unmarshal links", zap.String("profile_id", p.ID), zap.Error(err))
	}
	p.Normalize()
	return p, nil
}

func (r *postgresProfileRepo) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns).From("profiles").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, apperror.NewUnexpected("failed to build find by email query", err)
	}

	p, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewUnexpected("failed to query profile by email", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Insert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	education, projects, work, links, err := marshalDocuments(p.Education, p.Projects, p.Work, p.Links)
	if err != nil {
		return nil, apperror.NewUnexpected("failed to marshal profile", err)
	}

	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	query, args, err := psql.Insert("profiles").
		Columns("name", "email", "education", "skills", "projects", "work", "links", "created_at", "updated_at").
		Values(p.Name, p.Email, education, skills, projects, work, links, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + profileColumns).
		ToSql()
	if err != nil {
		return nil, apperror.NewUnexpected("failed to build insert query", err)
	}

	created, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, p.Email, "failed to insert profile")
	}
	return created, nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	query, args, err := psql.Select(profileColumns).From("profiles").Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return nil, apperror.NewUnexpected("failed to build find by id query", err)
	}

	p, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewUnexpected("failed to query profile by id", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) UpdateByID(ctx context.Context, id string, patch profile.Patch) (*profile.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	set, err := patchSetMap(patch)
	if err != nil {
		return nil, apperror.NewUnexpected("failed to marshal profile patch", err)
	}

	query, args, err := psql.Update("profiles").
		SetMap(set).
		Where(sq.Eq{"id": uid}).
		Suffix("RETURNING " + profileColumns).
		ToSql()
	if err != nil {
		return nil, apperror.NewUnexpected("failed to build update query", err)
	}

	updated, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err, "", "failed to update profile")
	}
	return updated, nil
}

func (r *postgresProfileRepo) Query(ctx context.Context, q profile.Query) ([]*profile.Profile, int64, error) {
	where := predicateSQL(q.Predicate)

	countBuilder := psql.Select("COUNT(*)").From("profiles")
	if where != nil {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewUnexpected("failed to build count query", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewUnexpected("failed to count profiles", err)
	}

	builder := selectProfiles(q, where)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewUnexpected("failed to build profile query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.NewUnexpected("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, 0, apperror.NewUnexpected("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewUnexpected("error iterating profile rows", err)
	}
	return profiles, total, nil
}

func selectProfiles(q profile.Query, where sq.Sqlizer) sq.SelectBuilder {
	builder := psql.Select(profileColumns).From("profiles")
	if where != nil {
		builder = builder.Where(where)
	}
	if q.Sort == profile.SortNewestFirst {
		builder = builder.OrderBy("created_at DESC", "id DESC")
	}
	if q.Skip > 0 {
		builder = builder.Offset(uint64(q.Skip))
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	return builder
}

const skillILikeAny = "EXISTS (SELECT 1 FROM unnest(skills) AS skill WHERE skill ILIKE ANY(?))"

// predicateSQL returns nil when the predicate matches every row.
func predicateSQL(p profile.Predicate) sq.Sqlizer {
	if p.IsSkillSearch() {
		if len(p.AnySkills) == 0 {
			return sq.Expr("FALSE")
		}
		patterns := make([]string, len(p.AnySkills))
		for i, token := range p.AnySkills {
			patterns[i] = likePattern(token)
		}
		return sq.Expr(skillILikeAny, patterns)
	}
	if p.Text == "" {
		return nil
	}
	pattern := likePattern(p.Text)
	return sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"email": pattern},
		sq.Expr(skillILikeAny, []string{pattern}),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern with LIKE wildcards in s escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func marshalDocuments(education []profile.EducationEntry, projects []profile.ProjectEntry, work []profile.WorkEntry, links profile.LinkSet) (edu, proj, wrk, lnk []byte, err error) {
	if edu, err = marshalOrEmpty(education); err != nil {
		return
	}
	if proj, err = marshalOrEmpty(projects); err != nil {
		return
	}
	if wrk, err = marshalOrEmpty(work); err != nil {
		return
	}
	lnk, err = json.Marshal(links)
	return
}

func marshalOrEmpty[T any](entries []T) ([]byte, error) {
	if entries == nil {
		entries = []T{}
	}
	return json.Marshal(entries)
}

func patchSetMap(patch profile.Patch) (map[string]any, error) {
	set := map[string]any{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.Education != nil {
		b, err := marshalOrEmpty(*patch.Education)
		if err != nil {
			return nil, err
		}
		set["education"] = b
	}
	if patch.Projects != nil {
		b, err := marshalOrEmpty(*patch.Projects)
		if err != nil {
			return nil, err
		}
		set["projects"] = b
	}
	if patch.Work != nil {
		b, err := marshalOrEmpty(*patch.Work)
		if err != nil {
			return nil, err
		}
		set["work"] = b
	}
	if patch.Links != nil {
		b, err := json.Marshal(*patch.Links)
		if err != nil {
			return nil, err
		}
		set["links"] = b
	}
	return set, nil
}

func mapPgError(err error, email, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.NewDuplicateEmail(email)
		// ids are parsed before any query, so 22P02 means malformed input data
		case "23502", "23514", "22P02":
			return apperror.NewStoreValidation([]string{pgErr.Message}, err)
		}
	}
	return apperror.NewUnexpected(msg, err)
}
