package domain

import "time"

type TourStatus string

const (
	TourActive   TourStatus = "ACTIVE"
	TourBroken   TourStatus = "BROKEN"
	TourFinished TourStatus = "FINISHED"
)

// Tour mirrors the student's streak for the season: it stays ACTIVE
// while the streak holds and flips to BROKEN when the streak breaks.
type Tour struct {
	ID             uint       `json:"id"`
	StudentID      uint       `json:"student_id"`
	SeasonID       string     `json:"season_id"`
	Name           string     `json:"name"`
	RequiredStreak int        `json:"required_streak"`
	Status         TourStatus `json:"status"`
	Completed      bool       `json:"completed"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type TourShow struct {
	ID        uint      `json:"id"`
	TourID    uint      `json:"tour_id"`
	City      string    `json:"city"`
	Venue     string    `json:"venue"`
	Date      time.Time `json:"date"`
	CheckedIn bool      `json:"checked_in"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
