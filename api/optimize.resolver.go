package api

import (
	"fgibacktest/internal/app"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OptimizeRequest struct {
	Start          string           `json:"start"`
	End            string           `json:"end"`
	InitialCapital *decimal.Decimal `json:"initialCapital"`
	FeeBps         *decimal.Decimal `json:"feeBps"`
	ExecuteOnClose bool             `json:"executeOnClose"`
	FillPolicy     string           `json:"fillPolicy"`

	// grid overrides; anything left out comes from config
	BuyMin  *int `json:"buyMin"`
	BuyMax  *int `json:"buyMax"`
	SellMin *int `json:"sellMin"`
	SellMax *int `json:"sellMax"`
	Step    *int `json:"step"`
	Top     *int `json:"top"`
}

type OptimizeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	*app.SensitivityReport
}

func (h ApiHandler) optimize(c *gin.Context) {
	var requestBody OptimizeRequest
	// an empty body means "all defaults"
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&requestBody); err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
	}

	start, end, err := parseWindow(requestBody.Start, requestBody.End, h.now())
	if err != nil {
		returnAppError(err, c)
		return
	}
	policy, err := domain.NewFillPolicy(requestBody.FillPolicy)
	if err != nil {
		returnAppError(&domain.InvalidParamsError{Field: "fillPolicy", Reason: err.Error()}, c)
		return
	}

	cfg := h.Sensitivity
	report, err := h.SensitivityApp.Run(requestContext(c), app.SensitivityInput{
		Start:          start,
		End:            end,
		InitialCapital: valueOr(requestBody.InitialCapital, defaultInitialCapital),
		FeeRate:        domain.FeeRateFromBps(valueOr(requestBody.FeeBps, defaultFeeBps)),
		ExecuteOnClose: requestBody.ExecuteOnClose,
		FillPolicy:     policy,
		Grid: app.SensitivityGrid{
			BuyMin:  intOr(requestBody.BuyMin, cfg.BuyMin),
			BuyMax:  intOr(requestBody.BuyMax, cfg.BuyMax),
			SellMin: intOr(requestBody.SellMin, cfg.SellMin),
			SellMax: intOr(requestBody.SellMax, cfg.SellMax),
			Step:    intOr(requestBody.Step, cfg.Step),
		},
		Top:     intOr(requestBody.Top, cfg.Top),
		Workers: cfg.Workers,
	})
	if err != nil {
		returnAppError(err, c)
		return
	}

	c.JSON(200, OptimizeResponse{
		Start:             util.FormatDate(start),
		End:               util.FormatDate(end),
		SensitivityReport: report,
	})
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
