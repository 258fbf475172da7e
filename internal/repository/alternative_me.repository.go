package repository

import (
	"context"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/pkg/alternativeme"
)

type alternativeMeRepositoryHandler struct {
	Client *alternativeme.Client
}

func NewAlternativeMeRepository(client *alternativeme.Client) SentimentSourceRepository {
	return alternativeMeRepositoryHandler{
		Client: client,
	}
}

func (h alternativeMeRepositoryHandler) Name() string {
	return "alternative.me"
}

func (h alternativeMeRepositoryHandler) FetchSentiment(ctx context.Context) ([]domain.SentimentPoint, error) {
	history, err := h.Client.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	if history.Skipped > 0 {
		logger.FromContext(ctx).Debugf("alternative.me: skipped %d malformed records", history.Skipped)
	}

	out := make([]domain.SentimentPoint, 0, len(history.Observations))
	for _, o := range history.Observations {
		out = append(out, domain.SentimentPoint{
			Date:  o.Date,
			Value: o.Value,
		})
	}
	return out, nil
}
