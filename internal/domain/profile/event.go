package profile

import "time"

type EventType string

const (
	EventCreated EventType = "profile.created"
	EventUpdated EventType = "profile.updated"
)

// Event is published after a successful create or update.
type Event struct {
	Type           EventType `json:"eventType"`
	ProfileID      string    `json:"profileId"`
	Email          string    `json:"email"`
	Skills         []string  `json:"skills"`
	PreviousSkills []string  `json:"previousSkills"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewCreatedEvent(p *Profile, at time.Time) Event {
	return Event{
		Type:           EventCreated,
		ProfileID:      p.ID,
		Email:          p.Email,
		Skills:         append([]string{}, p.Skills...),
		PreviousSkills: []string{},
		OccurredAt:     at,
	}
}

func NewUpdatedEvent(p *Profile, previousSkills []string, at time.Time) Event {
	return Event{
		Type:           EventUpdated,
		ProfileID:      p.ID,
		Email:          p.Email,
		Skills:         append([]string{}, p.Skills...),
		PreviousSkills: append([]string{}, previousSkills...),
		OccurredAt:     at,
	}
}
