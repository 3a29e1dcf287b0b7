package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voterbowl/backend/internal/api/handler/v1/response"
	"github.com/voterbowl/backend/internal/service"
)

type ValidationService interface {
	Consume(ctx context.Context, token, schoolSlug string, now time.Time) (service.ValidationOutcome, error)
}

type ValidationHandler struct {
	svc ValidationService
}

func NewValidationHandler(svc ValidationService) *ValidationHandler {
	return &ValidationHandler{
		svc: svc,
	}
}

// HandleValidateEmail godoc
// @Summary      Consume an email validation link
// @Description  Marks the student's email validated and releases any pending prize. Safe to revisit.
// @Tags         validation
// @Produce      json
// @Param        schoolSlug  path      string  true  "school slug"
// @Param        token       path      string  true  "validation token"
// @Success      200  {object}  response.ValidateEmailResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /schools/{schoolSlug}/v/{token} [get]
func (h *ValidationHandler) HandleValidateEmail(ctx *gin.Context) {
	slug := ctx.Param("schoolSlug")
	token := ctx.Param("token")

	outcome, err := h.svc.Consume(ctx.Request.Context(), token, slug, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("validation link", "token", token))
			return
		}
		if errors.Is(err, service.ErrWrongSchool) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrWrongSchool))
			return
		}

		err = fmt.Errorf("v1.HandleValidateEmail -> h.svc.Consume -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewValidateEmailResponse(outcome))
}
