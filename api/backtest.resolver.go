package api

import (
	"time"

	"fgibacktest/internal/app"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// request defaults, applied here and nowhere deeper
var (
	defaultBuyBelow       = decimal.NewFromInt(30)
	defaultSellAbove      = decimal.NewFromInt(70)
	defaultInitialCapital = decimal.NewFromInt(1000)
	defaultFeeBps         = decimal.NewFromInt(10)
)

const defaultLookbackDays = 730

type BacktestRequest struct {
	Start          string           `json:"start"`
	End            string           `json:"end"`
	BuyBelow       *decimal.Decimal `json:"buyBelow"`
	SellAbove      *decimal.Decimal `json:"sellAbove"`
	InitialCapital *decimal.Decimal `json:"initialCapital"`
	FeeBps         *decimal.Decimal `json:"feeBps"`
	ExecuteOnClose bool             `json:"executeOnClose"`
	FillPolicy     string           `json:"fillPolicy"`
}

type BacktestResponse struct {
	Start          string          `json:"start"`
	End            string          `json:"end"`
	BuyBelow       decimal.Decimal `json:"buyBelow"`
	SellAbove      decimal.Decimal `json:"sellAbove"`
	InitialCapital decimal.Decimal `json:"initialCapital"`
	FeeRate        decimal.Decimal `json:"feeRate"`
	*app.BacktestResult
}

func (h ApiHandler) backtest(c *gin.Context) {
	var requestBody BacktestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&requestBody); err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
	}

	params, err := h.toBacktestParams(requestBody)
	if err != nil {
		returnAppError(err, c)
		return
	}

	result, err := h.BacktestApp.Run(requestContext(c), params)
	if err != nil {
		returnAppError(err, c)
		return
	}

	c.JSON(200, BacktestResponse{
		Start:          util.FormatDate(params.Start),
		End:            util.FormatDate(params.End),
		BuyBelow:       params.BuyBelow,
		SellAbove:      params.SellAbove,
		InitialCapital: params.InitialCapital,
		FeeRate:        params.FeeRate,
		BacktestResult: result,
	})
}

func (h ApiHandler) toBacktestParams(in BacktestRequest) (domain.BacktestParams, error) {
	start, end, err := parseWindow(in.Start, in.End, h.now())
	if err != nil {
		return domain.BacktestParams{}, err
	}
	policy, err := domain.NewFillPolicy(in.FillPolicy)
	if err != nil {
		return domain.BacktestParams{}, &domain.InvalidParamsError{Field: "fillPolicy", Reason: err.Error()}
	}

	return domain.BacktestParams{
		Start:          start,
		End:            end,
		BuyBelow:       valueOr(in.BuyBelow, defaultBuyBelow),
		SellAbove:      valueOr(in.SellAbove, defaultSellAbove),
		InitialCapital: valueOr(in.InitialCapital, defaultInitialCapital),
		FeeRate:        domain.FeeRateFromBps(valueOr(in.FeeBps, defaultFeeBps)),
		ExecuteOnClose: in.ExecuteOnClose,
		FillPolicy:     policy,
	}, nil
}

// parseWindow fills in a missing end with today and a missing start with
// two years before end
func parseWindow(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	end := util.DateOnly(now)
	if endStr != "" {
		t, err := util.ParseDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.InvalidParamsError{Field: "end", Reason: err.Error()}
		}
		end = t
	}
	start := end.AddDate(0, 0, -defaultLookbackDays)
	if startStr != "" {
		t, err := util.ParseDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.InvalidParamsError{Field: "start", Reason: err.Error()}
		}
		start = t
	}
	return start, end, nil
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
