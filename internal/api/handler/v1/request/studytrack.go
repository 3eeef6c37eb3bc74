package request

import validation "github.com/go-ozzo/ozzo-validation"

type ToggleStudyTrackRequest struct {
	Notes string `json:"notes"`
}

func (req *ToggleStudyTrackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}
