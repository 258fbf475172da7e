package api

import (
	"strconv"

	"fgibacktest/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	defaultPreviewRows = 10
	maxPreviewRows     = 500
)

// series shows the first aligned rows for a window along with where each
// input came from; useful when a backtest comes back with no data
func (h ApiHandler) series(c *gin.Context) {
	start, end, err := parseWindow(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		returnAppError(err, c)
		return
	}
	policy, err := domain.NewFillPolicy(c.Query("fillPolicy"))
	if err != nil {
		returnAppError(&domain.InvalidParamsError{Field: "fillPolicy", Reason: err.Error()}, c)
		return
	}
	limit, err := parseLimit(c.Query("limit"), defaultPreviewRows, maxPreviewRows)
	if err != nil {
		returnAppError(err, c)
		return
	}

	preview, err := h.BacktestApp.PreviewSeries(requestContext(c), start, end, policy, limit)
	if err != nil {
		returnAppError(err, c)
		return
	}
	c.JSON(200, preview)
}

func parseLimit(s string, fallback, max int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0, &domain.InvalidParamsError{Field: "limit", Reason: "must be a positive integer"}
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
