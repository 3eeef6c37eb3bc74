package request

import validation "github.com/go-ozzo/ozzo-validation"

type SubmitAttemptRequest struct {
	Answers []int `json:"answers"`
}

func (req *SubmitAttemptRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Answers, validation.Required, validation.Length(1, 100)),
	)
}
