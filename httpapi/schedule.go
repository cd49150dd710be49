package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/models"
	"shuttlesched/utils"
)

// Schedule answers POST /v1_webapp_auto_scheduling: build and return a plan
// synchronously.
func (b *Bundle) Schedule(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := b.Validate.Struct(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	resp, err := b.Scheduler.Schedule(c.Request.Context(), &req)
	if err != nil {
		b.Logger.Warn("schedule request failed", zap.Error(err))
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
