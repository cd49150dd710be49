package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/models"
	"shuttlesched/utils"
)

// Enqueue answers POST /v1_webapp_auto_scheduling/enqueue: persist the
// request as a PENDING task and return its id for later polling.
func (b *Bundle) Enqueue(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := b.Validate.Struct(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	body, err := json.Marshal(&req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to enqueue request", err.Error())
		return
	}

	taskID, err := b.TaskStore.CreateTask(c.Request.Context(), string(body))
	if err != nil {
		b.Logger.Warn("enqueue failed", zap.Error(err))
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.EnqueueResponse{TaskID: taskID})
}
