package domain

import "time"

type SubmissionStatus string

const (
	SubmissionPendingReview SubmissionStatus = "PENDING_REVIEW"
	SubmissionApproved      SubmissionStatus = "APPROVED"
	SubmissionNeedsRevision SubmissionStatus = "NEEDS_REVISION"
	SubmissionRejected      SubmissionStatus = "REJECTED"
)

type ReviewType string

const (
	ReviewPositive     ReviewType = "POSITIVE"
	ReviewConstructive ReviewType = "CONSTRUCTIVE"
	ReviewCritical     ReviewType = "CRITICAL"
)

// IsValid reports whether the review type is one of the three outcomes.
func (t ReviewType) IsValid() bool {
	switch t {
	case ReviewPositive, ReviewConstructive, ReviewCritical:
		return true
	default:
		return false
	}
}

// SubmissionStatusForReview maps a review outcome onto the submission
// lifecycle.
func SubmissionStatusForReview(t ReviewType) SubmissionStatus {
	switch t {
	case ReviewPositive:
		return SubmissionApproved
	case ReviewConstructive:
		return SubmissionNeedsRevision
	default:
		return SubmissionRejected
	}
}

// Submission is a recorded performance attempt sent for review.
type Submission struct {
	ID            uint             `json:"id"`
	StudentID     uint             `json:"student_id"`
	TrackSceneID  uint             `json:"track_scene_id"`
	AttemptNumber int              `json:"attempt_number"`
	MediaURL      string           `json:"media_url,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Status        SubmissionStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Review is instructor feedback on a submission.
type Review struct {
	ID           uint       `json:"id"`
	SubmissionID uint       `json:"submission_id"`
	TeacherID    uint       `json:"teacher_id"`
	Type         ReviewType `json:"type"`
	Rating       int        `json:"rating,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
