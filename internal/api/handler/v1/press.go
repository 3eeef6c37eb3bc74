package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clavedesales/clave-api/internal/api/handler/v1/request"
	"github.com/clavedesales/clave-api/internal/api/handler/v1/response"
	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/service"
)

type PressService interface {
	SubmitAttempt(ctx context.Context, studentID, quizID uint, answers []int) (domain.PressAttempt, error)
}

type PressHandler struct {
	svc PressService
}

func NewPressHandler(svc PressService) *PressHandler {
	return &PressHandler{
		svc: svc,
	}
}

// HandleSubmitAttempt godoc
// @Summary      Submit an answer sheet for a press quiz
// @Tags         press
// @Produce      json
// @Param        quizID    path   int  true  "press quiz ID"
// @Param        request   body      request.SubmitAttemptRequest true "request body"
// @Success      201  {object}  domain.PressAttempt
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /press-quizzes/{quizID}/attempts [post]
func (h *PressHandler) HandleSubmitAttempt(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	quizID, err := parseIDParam(ctx, "quizID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitAttemptRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	attempt, err := h.svc.SubmitAttempt(ctx.Request.Context(), studentID, quizID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPressQuizNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPressQuizNotFound))
		case errors.Is(err, service.ErrPressQuizInactive), errors.Is(err, service.ErrNoAnswersSubmitted):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrMaxAttemptsReached):
			response.RenderErr(ctx, response.ErrConflict(service.ErrMaxAttemptsReached))
		default:
			err = fmt.Errorf("v1.HandleSubmitAttempt -> h.svc.SubmitAttempt -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, attempt)
}
