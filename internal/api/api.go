// Package api is the HTTP transport for the advisor service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/model"
)

const (
	DefaultTimeout      = 30 * time.Second
	ServiceName         = "market-advisor"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// AdvisorService is the operation surface the handlers call.
type AdvisorService interface {
	Stocks() []string
	Markers() []model.MarkerDefinition
	Marker(ctx context.Context, symbol, markerID string) (*calculator.Result, error)
	Explain(ctx context.Context, symbol string) (*model.CompositeResult, error)
	Ticks(ctx context.Context, symbol, window, date string) ([]model.Tick, error)
	Fundamentals(ctx context.Context, symbol string) (*model.FundamentalsSnapshot, error)
}

// APIHandler handles HTTP requests using Gin framework
type APIHandler struct {
	service   AdvisorService
	validator *Validator
	metrics   http.Handler
	log       zerolog.Logger
}

// NewAPIHandler creates a new API handler. metrics may be nil to omit /metrics.
func NewAPIHandler(service AdvisorService, metrics http.Handler, log zerolog.Logger) *APIHandler {
	return &APIHandler{
		service:   service,
		validator: GetValidator(),
		metrics:   metrics,
		log:       log,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(h.log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", h.HealthCheck)
	router.GET("/stocks", h.GetStocks)
	router.GET("/ticks/:symbol", h.GetTicks)
	router.GET("/fundamentals/:symbol", h.GetFundamentals)
	router.GET("/analysis/:ticker/explanation", h.GetExplanation)
	router.GET("/analysis/ta/stockmarkers", h.GetMarkers)
	router.GET("/analysis/ta/stockmarker/:ticker/:markerid", h.GetMarker)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	return router
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func (h *APIHandler) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      DefaultTimeout + 5*time.Second,
	}
}
