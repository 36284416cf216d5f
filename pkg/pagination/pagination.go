package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// Parse reads raw page/limit query values. Missing or non-numeric input falls
// back to the defaults, fractional input is truncated, and non-positive values
// are clamped so Skip never goes negative.
func Parse(rawPage, rawLimit string, defaultLimit, maxLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	page, ok := coerceInt(rawPage)
	if !ok || page < 1 {
		page = DefaultPage
	}

	limit, ok := coerceInt(rawLimit)
	if !ok || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}

func coerceInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

type Meta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalProfiles   int64 `json:"totalProfiles"`
	ProfilesPerPage int   `json:"profilesPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPrevPage     bool  `json:"hasPrevPage"`
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{
		CurrentPage:     p.Page,
		TotalPages:      totalPages,
		TotalProfiles:   total,
		ProfilesPerPage: p.Limit,
		HasNextPage:     p.Page < totalPages,
		HasPrevPage:     p.Page > 1,
	}
}
