package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clavedesales/clave-api/internal/api/handler/v1/request"
	"github.com/clavedesales/clave-api/internal/api/handler/v1/response"
	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/service"
)

type CareerService interface {
	ApplyEvent(ctx context.Context, studentID uint, kind domain.EventKind) (domain.Career, error)
	GetSnapshot(ctx context.Context, studentID uint) (domain.Career, error)
	GetFanHistory(ctx context.Context, studentID uint, limit int) ([]domain.FanTransaction, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	GetAchievements(ctx context.Context, studentID uint) ([]domain.Achievement, []domain.StudentAchievement, error)
	CheckInTourShow(ctx context.Context, studentID, tourID, showID uint) (domain.TourShow, error)
	CompleteProject(ctx context.Context, studentID, projectID uint) (domain.Career, error)
}

type CareerHandler struct {
	svc      CareerService
	seasonID string
}

func NewCareerHandler(svc CareerService, seasonID string) *CareerHandler {
	return &CareerHandler{
		svc:      svc,
		seasonID: seasonID,
	}
}

// HandleGetCareer godoc
// @Summary      Get the current career snapshot
// @Tags         career
// @Produce      json
// @Success      200  {object}  response.CareerSnapshotResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /career [get]
func (h *CareerHandler) HandleGetCareer(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	career, err := h.svc.GetSnapshot(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCareer -> h.svc.GetSnapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewCareerSnapshot(career))
}

// HandleGetFanHistory godoc
// @Summary      Get the most recent fan transactions
// @Tags         career
// @Produce      json
// @Param        limit    query      int  false  "max entries, capped at 50"
// @Success      200  {object}  response.FanHistoryResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /career/history [get]
func (h *CareerHandler) HandleGetFanHistory(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	txns, err := h.svc.GetFanHistory(ctx.Request.Context(), studentID, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFanHistory -> h.svc.GetFanHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.FanHistoryResponse{
		Transactions: txns,
	})
}

// HandleGetLeaderboard godoc
// @Summary      Get the season leaderboard
// @Tags         career
// @Produce      json
// @Param        limit    query      int  false  "max entries"
// @Success      200  {object}  response.LeaderboardResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /career/leaderboard [get]
func (h *CareerHandler) HandleGetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := h.svc.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{
		SeasonID: h.seasonID,
		Entries:  entries,
	})
}

// HandleCompleteRoutine godoc
// @Summary      Report today's routine as completed
// @Tags         career
// @Produce      json
// @Param        request   body      request.CompleteRoutineRequest true "request body"
// @Success      200  {object}  response.CareerSnapshotResponse
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /routines/complete [post]
func (h *CareerHandler) HandleCompleteRoutine(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	var req request.CompleteRoutineRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	kind := domain.EventRoutineCompleted
	if req.WithPenalty {
		kind = domain.EventRoutineCompletedWithPenalty
	}

	career, err := h.svc.ApplyEvent(ctx.Request.Context(), studentID, kind)
	if err != nil {
		if errors.Is(err, service.ErrRoutineAlreadyCompleted) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrRoutineAlreadyCompleted))

			return
		}

		err = fmt.Errorf("v1.HandleCompleteRoutine -> h.svc.ApplyEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewCareerSnapshot(career))
}

// HandleGetAchievements godoc
// @Summary      Get the achievement catalog with unlock state
// @Tags         career
// @Produce      json
// @Success      200  {array}   response.AchievementResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /achievements [get]
func (h *CareerHandler) HandleGetAchievements(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	catalog, unlocked, err := h.svc.GetAchievements(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAchievements -> h.svc.GetAchievements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewAchievements(catalog, unlocked))
}

// HandleCheckInTourShow godoc
// @Summary      Check in to a tour show
// @Tags         career
// @Produce      json
// @Param        tourID    path       int  true  "tour ID"
// @Param        showID    path       int  true  "show ID"
// @Success      200  {object}  domain.TourShow
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/shows/{showID}/checkin [post]
func (h *CareerHandler) HandleCheckInTourShow(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	tourID, err := parseIDParam(ctx, "tourID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	showID, err := parseIDParam(ctx, "showID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	show, err := h.svc.CheckInTourShow(ctx.Request.Context(), studentID, tourID, showID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound), errors.Is(err, service.ErrTourShowNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrShowAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(service.ErrShowAlreadyCheckedIn))
		default:
			err = fmt.Errorf("v1.HandleCheckInTourShow -> h.svc.CheckInTourShow -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, show)
}

// HandleCompleteProject godoc
// @Summary      Report a season project as completed
// @Tags         career
// @Produce      json
// @Param        projectID    path    int  true  "project ID"
// @Success      200  {object}  response.CareerSnapshotResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID}/complete [post]
func (h *CareerHandler) HandleCompleteProject(ctx *gin.Context) {
	studentID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	projectID, err := parseIDParam(ctx, "projectID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	career, err := h.svc.CompleteProject(ctx.Request.Context(), studentID, projectID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCompleteProject -> h.svc.CompleteProject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewCareerSnapshot(career))
}
