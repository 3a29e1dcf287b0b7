package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voterbowl/backend/internal/api/handler/v1/response"
	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/service"
)

type SchoolService interface {
	GetSchool(ctx context.Context, slug string) (domain.School, error)
}

type ContestService interface {
	CurrentContest(ctx context.Context, schoolID uint, now time.Time) (*domain.Contest, error)
	MostRecentPastContest(ctx context.Context, schoolID uint, now time.Time) (*domain.Contest, error)
}

type SchoolHandler struct {
	svc        SchoolService
	contestSvc ContestService
}

func NewSchoolHandler(svc SchoolService, contestSvc ContestService) *SchoolHandler {
	return &SchoolHandler{
		svc:        svc,
		contestSvc: contestSvc,
	}
}

// HandleGetSchool godoc
// @Summary      Get a school's landing page data
// @Description  Returns the school plus its current and most recent contests
// @Tags         schools
// @Produce      json
// @Param        schoolSlug  path      string  true  "school slug"
// @Success      200  {object}  response.GetSchoolResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /schools/{schoolSlug} [get]
func (h *SchoolHandler) HandleGetSchool(ctx *gin.Context) {
	slug := ctx.Param("schoolSlug")
	now := time.Now()

	school, err := h.svc.GetSchool(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("school", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleGetSchool -> h.svc.GetSchool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	current, err := h.contestSvc.CurrentContest(ctx.Request.Context(), school.ID, now)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSchool -> h.contestSvc.CurrentContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recent, err := h.contestSvc.MostRecentPastContest(ctx.Request.Context(), school.ID, now)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSchool -> h.contestSvc.MostRecentPastContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GetSchoolResponse{
		School:         response.NewSchool(school),
		CurrentContest: response.NewContest(current, now),
		RecentContest:  response.NewContest(recent, now),
	})
}
