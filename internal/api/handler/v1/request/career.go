package request

type CompleteRoutineRequest struct {
	WithPenalty bool `json:"with_penalty"`
}
