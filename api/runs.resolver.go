package api

import (
	"github.com/gin-gonic/gin"
)

const (
	defaultRunsLimit = 50
	maxRunsLimit     = 500
)

func (h ApiHandler) listRuns(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), defaultRunsLimit, maxRunsLimit)
	if err != nil {
		returnAppError(err, c)
		return
	}

	runs, err := h.BacktestApp.ListRuns(requestContext(c), limit)
	if err != nil {
		returnAppError(err, c)
		return
	}
	c.JSON(200, gin.H{"runs": runs})
}
