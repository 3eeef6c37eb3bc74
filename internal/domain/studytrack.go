package domain

import "time"

// PracticeSessionMinutes is credited each time a study track is
// completed. Practice time is never retracted on un-complete.
const PracticeSessionMinutes = 15

// StudyTrack is one pedagogical sub-unit of a track scene, e.g.
// "harmony" or "blocking". Reference data; student activity never
// mutates it.
type StudyTrack struct {
	ID               uint      `json:"id"`
	TrackSceneID     uint      `json:"track_scene_id"`
	CategoryKey      string    `json:"category_key"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Order            int       `json:"order"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	IsRequired       bool      `json:"is_required"`
	CreatedAt        time.Time `json:"created_at"`
}

// StudentStudyTrack is the per-student completion record for one study
// track. CompletedAt is set iff Completed is true.
type StudentStudyTrack struct {
	ID           uint       `json:"id"`
	StudentID    uint       `json:"student_id"`
	StudyTrackID uint       `json:"study_track_id"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	PracticeTime int        `json:"practice_time"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Toggle flips the completion flag. A fresh record (first toggle)
// starts completed. Completing credits a practice session;
// un-completing keeps the time already spent.
func (t *StudentStudyTrack) Toggle(now time.Time) {
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		return
	}

	t.Completed = true
	t.CompletedAt = &now
	t.PracticeTime += PracticeSessionMinutes
}

type TrackSceneStatus string

const (
	TrackSceneLocked    TrackSceneStatus = "LOCKED"
	TrackSceneAvailable TrackSceneStatus = "AVAILABLE"
	TrackSceneStudying  TrackSceneStatus = "STUDYING"
	TrackSceneCompleted TrackSceneStatus = "COMPLETED"
)

// TrackScene is a song or theatrical scene, the unit of study within a
// project. Order defines the unlock sequence.
type TrackScene struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// StudentTrackScene tracks a student's progress on one track scene.
// COMPLETED requires every required study track completed; completing a
// scene unlocks at most the next scene in order.
type StudentTrackScene struct {
	ID           uint             `json:"id"`
	StudentID    uint             `json:"student_id"`
	TrackSceneID uint             `json:"track_scene_id"`
	Status       TrackSceneStatus `json:"status"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// StudyProgress summarizes required-track completion for a track scene.
type StudyProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// ComputeStudyProgress counts completed required tracks. Optional
// tracks never gate scene completion.
func ComputeStudyProgress(required []StudyTrack, records []StudentStudyTrack) StudyProgress {
	done := make(map[uint]bool, len(records))
	for _, r := range records {
		if r.Completed {
			done[r.StudyTrackID] = true
		}
	}

	progress := StudyProgress{Total: len(required)}
	for _, track := range required {
		if done[track.ID] {
			progress.Completed++
		}
	}

	if progress.Total > 0 {
		progress.Percent = progress.Completed * 100 / progress.Total
	}

	return progress
}

// AllRequiredComplete reports whether the scene is ready to be marked
// COMPLETED. A scene with no required tracks never auto-completes.
func (p StudyProgress) AllRequiredComplete() bool {
	return p.Total > 0 && p.Completed == p.Total
}
