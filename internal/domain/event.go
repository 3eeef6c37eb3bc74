package domain

import "errors"

// ErrUnknownEventKind means the caller passed an event with no reward
// mapping. Unknown kinds fail fast instead of defaulting to zero fans.
var ErrUnknownEventKind = errors.New("unknown progression event kind")

// EventKind names a scoring fact reported by the outer layers.
// Collaborators report outcomes only; the reward table below is the
// single source of truth for fan amounts.
type EventKind string

const (
	EventRoutineCompleted            EventKind = "ROUTINE_COMPLETED"
	EventRoutineCompletedWithPenalty EventKind = "ROUTINE_COMPLETED_WITH_PENALTY"
	EventStreakBroken                EventKind = "STREAK_BROKEN"
	EventStreakBonus                 EventKind = "STREAK_7_DAY_BONUS"
	EventSubmissionCreated           EventKind = "SUBMISSION_CREATED"
	EventReviewPositive              EventKind = "REVIEW_POSITIVE"
	EventReviewConstructive          EventKind = "REVIEW_CONSTRUCTIVE"
	EventReviewCritical              EventKind = "REVIEW_CRITICAL"
	EventPressQuizPassed             EventKind = "PRESS_QUIZ_PASSED"
	EventPressQuizFailed             EventKind = "PRESS_QUIZ_FAILED"
	EventTrackSceneCompleted         EventKind = "TRACK_SCENE_COMPLETED"
	EventProjectCompleted            EventKind = "PROJECT_COMPLETED"
	EventTourCheckIn                 EventKind = "TOUR_CHECK_IN"
)

type Reward struct {
	Fans   int
	Reason string
}

var rewardTable = map[EventKind]Reward{
	EventRoutineCompleted:            {50, "Daily routine completed"},
	EventRoutineCompletedWithPenalty: {30, "Daily routine completed (quiz penalty)"},
	EventStreakBroken:                {-50, "Streak broken"},
	EventStreakBonus:                 {800, "7-day streak bonus"},
	EventSubmissionCreated:           {300, "Demo submitted to the studio"},
	EventReviewPositive:              {300, "Positive review received"},
	EventReviewConstructive:          {100, "Constructive review received"},
	EventReviewCritical:              {50, "Critical review received"},
	EventPressQuizPassed:             {500, "Press conference passed"},
	EventPressQuizFailed:             {-20, "Press conference failed"},
	EventTrackSceneCompleted:         {250, "Track scene completed"},
	EventProjectCompleted:            {1000, "Season project completed"},
	EventTourCheckIn:                 {100, "Tour show check-in"},
}

// RewardFor looks up the fan delta and ledger reason for an event kind.
func RewardFor(kind EventKind) (Reward, error) {
	reward, ok := rewardTable[kind]
	if !ok {
		return Reward{}, ErrUnknownEventKind
	}

	return reward, nil
}
