package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttlesched/utils"
)

// Root answers GET / with an empty object, matching the bare liveness probe
// the front door has always exposed.
func (b *Bundle) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// Healthz reports the last periodic health snapshot of the task store and,
// when applicable, the persistent cache backend.
func (b *Bundle) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
