package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fgibacktest/internal/app"
	"fgibacktest/internal/logger"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	BacktestApp    app.BacktestApp
	SensitivityApp app.SensitivityApp
	Metrics        *metrics.Recorder
	// Gatherer backs GET /metrics; nil disables the route
	Gatherer    prometheus.Gatherer
	Logger      *zap.SugaredLogger
	Sensitivity util.SensitivityConfig
	Now         func() time.Time
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "fear & greed backtester"})
	})
	router.POST("/backtest", m.backtest)
	router.POST("/optimize", m.optimize)
	router.GET("/series", m.series)
	router.GET("/runs", m.listRuns)
	if m.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
	}

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m ApiHandler) baseLogger() *zap.SugaredLogger {
	if m.Logger != nil {
		return m.Logger
	}
	return zap.S()
}

// logRequestMiddleware tags each request with an id, hands the request
// scoped logger down through the request context and records the outcome
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)

	log := m.baseLogger().With("requestID", requestID)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))

	start := time.Now()
	c.Next()
	elapsed := time.Since(start)

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	m.Metrics.RecordRequest(route, c.Request.Method, strconv.Itoa(status), elapsed)

	log.Infow(
		"request",
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"latencyMs", elapsed.Milliseconds(),
	)
}

func requestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, http.StatusInternalServerError)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(requestContext(c))
	if code >= 500 {
		log.Errorf("request failed: %v", err)
	} else {
		log.Warnf("request rejected: %v", err)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}
