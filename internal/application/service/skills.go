package service

import "context"

type SkillCount struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

// SkillIndex counts how many profiles list each skill.
type SkillIndex interface {
	Apply(ctx context.Context, added, removed []string) error
	Top(ctx context.Context, n int) ([]SkillCount, error)
}
