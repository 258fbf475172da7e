package api

import (
	"errors"
	"net/http"

	"fgibacktest/internal/app"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"

	"github.com/gin-gonic/gin"
)

type noDataResponse struct {
	Error             string            `json:"error"`
	Requested         *domain.DateRange `json:"requested,omitempty"`
	SentimentCoverage *domain.DateRange `json:"sentimentCoverage,omitempty"`
	PriceCoverage     *domain.DateRange `json:"priceCoverage,omitempty"`
	SuggestedWindow   *domain.DateRange `json:"suggestedWindow,omitempty"`
}

// returnAppError picks the status for errors coming out of internal/app.
// "no data" outcomes carry the coverage so the caller can pick a new window
func returnAppError(err error, c *gin.Context) {
	switch {
	case domain.IsInvalidParams(err):
		returnErrorJsonCode(err, c, http.StatusBadRequest)
	case errors.Is(err, app.ErrHistoryDisabled):
		returnErrorJsonCode(err, c, http.StatusNotFound)
	case isDataIntegrity(err):
		returnErrorJsonCode(err, c, http.StatusUnprocessableEntity)
	case domain.IsNoData(err):
		out := noDataResponse{Error: err.Error()}
		var noOverlap *domain.NoOverlapError
		if errors.As(err, &noOverlap) {
			out.Requested = &noOverlap.Requested
			out.SentimentCoverage = &noOverlap.Sentiment
			out.PriceCoverage = &noOverlap.Price
			if window, ok := noOverlap.SuggestedWindow(); ok {
				out.SuggestedWindow = &window
			}
		}
		logger.FromContext(requestContext(c)).Warnf("request rejected: %v", err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, out)
	default:
		returnErrorJson(err, c)
	}
}

// a bad upstream row is a problem with the requested data, not the server
func isDataIntegrity(err error) bool {
	var target *domain.DataIntegrityError
	return errors.As(err, &target)
}
