package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
)

type memoryRecord struct {
	seq     uint64
	profile *profile.Profile
}

type memoryProfileRepo struct {
	mu      sync.RWMutex
	seq     uint64
	byID    map[string]*memoryRecord
	byEmail map[string]string
}

// NewMemoryProfileRepo keeps profiles in process memory. Email uniqueness is
// checked under the write lock, so concurrent inserts behave like a unique
// index.
func NewMemoryProfileRepo() profile.Repository {
	return &memoryProfileRepo{
		byID:    make(map[string]*memoryRecord),
		byEmail: make(map[string]string),
	}
}

func (r *memoryProfileRepo) FindByEmail(_ context.Context, email string) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.byID[id].profile.Clone(), nil
}

func (r *memoryProfileRepo) Insert(_ context.Context, p *profile.Profile) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[p.Email]; exists {
		return nil, apperror.NewDuplicateEmail(p.Email)
	}

	stored := p.Clone()
	stored.ID = uuid.NewString()
	stored.Normalize()

	r.seq++
	r.byID[stored.ID] = &memoryRecord{seq: r.seq, profile: stored}
	r.byEmail[stored.Email] = stored.ID
	return stored.Clone(), nil
}

func (r *memoryProfileRepo) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return rec.profile.Clone(), nil
}

func (r *memoryProfileRepo) UpdateByID(_ context.Context, id string, patch profile.Patch) (*profile.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NewInvalidIdentifier(id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	// stored profiles are never mutated in place; readers may hold the old pointer
	updated := rec.profile.Clone()
	patch.ApplyTo(updated)
	updated.Normalize()
	rec.profile = updated
	return updated.Clone(), nil
}

func (r *memoryProfileRepo) Query(_ context.Context, q profile.Query) ([]*profile.Profile, int64, error) {
	r.mu.RLock()
	matches := make([]memoryRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		if q.Predicate.Matches(rec.profile) {
			matches = append(matches, *rec)
		}
	}
	r.mu.RUnlock()

	if q.Sort == profile.SortNewestFirst {
		sort.Slice(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if !a.profile.CreatedAt.Equal(b.profile.CreatedAt) {
				return a.profile.CreatedAt.After(b.profile.CreatedAt)
			}
			return a.seq > b.seq
		})
	} else {
		// insertion order stands in for the store's natural order
		sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })
	}

	total := int64(len(matches))
	start := min(max(q.Skip, 0), len(matches))
	end := len(matches)
	if q.Limit > 0 {
		end = min(start+q.Limit, end)
	}

	out := make([]*profile.Profile, 0, end-start)
	for _, rec := range matches[start:end] {
		out = append(out, rec.profile.Clone())
	}
	return out, total, nil
}
