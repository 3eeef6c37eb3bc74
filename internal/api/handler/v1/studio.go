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

type StudioService interface {
	CreateSubmission(ctx context.Context, studentID, trackSceneID uint, mediaURL, notes string) (domain.Submission, error)
	ListSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error)
	PostReview(ctx context.Context, teacherID, submissionID uint, reviewType domain.ReviewType, rating int, comment string) (domain.Review, error)
}

type StudioHandler struct {
	svc     StudioService
	userSvc UserService
}

func NewStudioHandler(svc StudioService, userSvc UserService) *StudioHandler {
	return &StudioHandler{
		svc:     svc,
		userSvc: userSvc,
	}
}

// HandleCreateSubmission godoc
// @Summary      Record a demo submission for a track scene
// @Tags         studio
// @Produce      json
// @Param        trackSceneID   path   int  true  "track scene ID"
// @Param        request   body      request.CreateSubmissionRequest true "request body"
// @Success      201  {object}  domain.Submission
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /track-scenes/{trackSceneID}/submissions [post]
func (h *StudioHandler) HandleCreateSubmission(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	trackSceneID, err := parseIDParam(ctx, "trackSceneID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateSubmissionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	submission, err := h.svc.CreateSubmission(ctx.Request.Context(), studentID, trackSceneID, req.MediaURL, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrSceneNotReady) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSceneNotReady))

			return
		}

		err = fmt.Errorf("v1.HandleCreateSubmission -> h.svc.CreateSubmission -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// HandleListSubmissions godoc
// @Summary      List the student's submissions
// @Tags         studio
// @Produce      json
// @Success      200  {array}   domain.Submission
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions [get]
func (h *StudioHandler) HandleListSubmissions(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	submissions, err := h.svc.ListSubmissions(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSubmissions -> h.svc.ListSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandlePostReview godoc
// @Summary      Post instructor feedback on a submission
// @Tags         studio
// @Produce      json
// @Param        submissionID   path   int  true  "submission ID"
// @Param        request   body      request.PostReviewRequest true "request body"
// @Success      201  {object}  domain.Review
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions/{submissionID}/review [post]
func (h *StudioHandler) HandlePostReview(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	user, err := h.userSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandlePostReview -> h.userSvc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if user.Role != domain.RoleTeacher {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	submissionID, err := parseIDParam(ctx, "submissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.PostReviewRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	review, err := h.svc.PostReview(ctx.Request.Context(), userID, submissionID, domain.ReviewType(req.Type), req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSubmissionNotFound))
		case errors.Is(err, service.ErrInvalidReviewType):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidReviewType))
		default:
			err = fmt.Errorf("v1.HandlePostReview -> h.svc.PostReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, review)
}
