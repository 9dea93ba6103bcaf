package controller

import (
	"roadcode_backend/internal/service"
	"roadcode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// @Summary Progress summary
// @Description Error totals and best/worst category over the user's recent completed exams
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /stats/summary [get]
func (c *StatsController) GetSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Service.Summary(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary Recent activity
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /stats/activity [get]
func (c *StatsController) GetActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	activity, err := c.Service.Activity(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, activity)
}
