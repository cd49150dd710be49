package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/errs"
	"shuttlesched/utils"
)

// writeSchedulingError maps a scheduler or task-store failure to the HTTP
// status the interface table assigns it. TaskNotFound is the only kind
// that isn't fatal to the request; every other kind is a 500 with the
// error's message surfaced for diagnosis. Every path is tagged with the
// error's short code so logs can be filtered without parsing messages.
func writeSchedulingError(c *gin.Context, err error) {
	zap.L().With(zap.String("code", errs.Code(err))).Warn("scheduling request failed", zap.Error(err))

	if errors.Is(err, errs.ErrTaskNotFound) {
		utils.JSONError(c, http.StatusNotFound, "task not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "scheduling failed", err.Error())
}
