package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/models"
	"shuttlesched/utils"
)

// Status answers GET /v1_webapp_auto_scheduling/:taskId: report a task's
// current lifecycle state, along with its result or error once terminal.
func (b *Bundle) Status(c *gin.Context) {
	taskID := c.Param("taskId")

	t, err := b.TaskStore.GetTask(c.Request.Context(), taskID)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	out := models.TaskStatusResponse{TaskID: t.TaskID, Status: t.Status}

	switch t.Status {
	case models.TaskCompleted:
		var resp models.ScheduleResponse
		if err := json.Unmarshal([]byte(t.ResponseBody), &resp); err != nil {
			b.Logger.Warn("stored task response is not valid JSON", zap.String("taskId", taskID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "corrupt task result", err.Error())
			return
		}
		out.Result = &resp
	case models.TaskFailed:
		msg := t.ErrorMessage
		out.Error = &msg
	}

	c.JSON(http.StatusOK, out)
}
