package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voterbowl/backend/internal/api/handler/v1/request"
	"github.com/voterbowl/backend/internal/api/handler/v1/response"
	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/service"
)

type CheckService interface {
	GetSchool(ctx context.Context, slug string) (domain.School, error)
	FinishCheck(ctx context.Context, schoolSlug, email, firstName, lastName string, now time.Time) (service.CheckResult, error)
}

type CheckHandler struct {
	svc        CheckService
	contestSvc ContestService
}

func NewCheckHandler(svc CheckService, contestSvc ContestService) *CheckHandler {
	return &CheckHandler{
		svc:        svc,
		contestSvc: contestSvc,
	}
}

// HandleGetCheckPage godoc
// @Summary      Get the registration check page data
// @Description  Returns the school plus whatever contest is running right now
// @Tags         checks
// @Produce      json
// @Param        schoolSlug  path      string  true  "school slug"
// @Success      200  {object}  response.GetCheckPageResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /schools/{schoolSlug}/check [get]
func (h *CheckHandler) HandleGetCheckPage(ctx *gin.Context) {
	slug := ctx.Param("schoolSlug")
	now := time.Now()

	school, err := h.svc.GetSchool(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("school", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleGetCheckPage -> h.svc.GetSchool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	current, err := h.contestSvc.CurrentContest(ctx.Request.Context(), school.ID, now)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCheckPage -> h.contestSvc.CurrentContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GetCheckPageResponse{
		School:         response.NewSchool(school),
		CurrentContest: response.NewContest(current, now),
	})
}

// HandleFinishCheck godoc
// @Summary      Finish a voter registration check
// @Description  Records the student, enters them in the running contest, and emails a validation link if needed
// @Tags         checks
// @Accept       json
// @Produce      json
// @Param        schoolSlug  path      string                      true  "school slug"
// @Param        input       body      request.FinishCheckRequest  true  "student details"
// @Success      200  {object}  response.FinishCheckResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /schools/{schoolSlug}/check/finish [post]
func (h *CheckHandler) HandleFinishCheck(ctx *gin.Context) {
	slug := ctx.Param("schoolSlug")
	now := time.Now()

	var req request.FinishCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.FinishCheck(ctx.Request.Context(), slug, req.Email, req.FirstName, req.LastName, now)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("school", "slug", slug))
			return
		}
		if errors.Is(err, service.ErrInvalidSchoolEmail) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSchoolEmail))
			return
		}
		if errors.Is(err, service.ErrContestNotStarted) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrContestNotStarted))
			return
		}

		err = fmt.Errorf("v1.HandleFinishCheck -> h.svc.FinishCheck -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewFinishCheckResponse(result, now))
}
