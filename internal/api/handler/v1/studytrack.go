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

type StudyTrackService interface {
	Toggle(ctx context.Context, studentID, studyTrackID uint, notes string) (domain.StudentStudyTrack, error)
	Progress(ctx context.Context, studentID, trackSceneID uint) (domain.StudyProgress, error)
	IsUnlocked(ctx context.Context, studentID, trackSceneID uint) (bool, error)
}

type StudyTrackHandler struct {
	svc StudyTrackService
}

func NewStudyTrackHandler(svc StudyTrackService) *StudyTrackHandler {
	return &StudyTrackHandler{
		svc: svc,
	}
}

// HandleToggle godoc
// @Summary      Toggle completion of a study track
// @Tags         study
// @Produce      json
// @Param        studyTrackID   path   int  true  "study track ID"
// @Param        request   body      request.ToggleStudyTrackRequest true "request body"
// @Success      200  {object}  domain.StudentStudyTrack
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /study-tracks/{studyTrackID}/toggle [post]
func (h *StudyTrackHandler) HandleToggle(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	studyTrackID, err := parseIDParam(ctx, "studyTrackID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ToggleStudyTrackRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	record, err := h.svc.Toggle(ctx.Request.Context(), studentID, studyTrackID, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrStudyTrackNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudyTrackNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleToggle -> h.svc.Toggle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, record)
}

// HandleGetProgress godoc
// @Summary      Get required-track progress for a track scene
// @Tags         study
// @Produce      json
// @Param        trackSceneID   path   int  true  "track scene ID"
// @Success      200  {object}  response.StudyProgressResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /track-scenes/{trackSceneID}/progress [get]
func (h *StudyTrackHandler) HandleGetProgress(ctx *gin.Context) {
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

	progress, err := h.svc.Progress(ctx.Request.Context(), studentID, trackSceneID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetProgress -> h.svc.Progress -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StudyProgressResponse{
		TrackSceneID: trackSceneID,
		Progress:     progress,
	})
}

// HandleGetUnlocked godoc
// @Summary      Check whether a track scene is unlocked
// @Tags         study
// @Produce      json
// @Param        trackSceneID   path   int  true  "track scene ID"
// @Success      200  {object}  response.SceneUnlockedResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /track-scenes/{trackSceneID}/unlocked [get]
func (h *StudyTrackHandler) HandleGetUnlocked(ctx *gin.Context) {
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

	unlocked, err := h.svc.IsUnlocked(ctx.Request.Context(), studentID, trackSceneID)
	if err != nil {
		if errors.Is(err, service.ErrTrackSceneNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTrackSceneNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetUnlocked -> h.svc.IsUnlocked -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SceneUnlockedResponse{
		TrackSceneID: trackSceneID,
		Unlocked:     unlocked,
	})
}
