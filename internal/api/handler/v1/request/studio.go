package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateSubmissionRequest struct {
	MediaURL string `json:"media_url"`
	Notes    string `json:"notes"`
}

func (req *CreateSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MediaURL, validation.Required, is.URL),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}

type PostReviewRequest struct {
	Type    string `json:"type"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *PostReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Type, validation.Required, validation.In("POSITIVE", "CONSTRUCTIVE", "CRITICAL")),
		validation.Field(&req.Rating, validation.Min(0), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}
