package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MarketAdvisor/internal/advisor"
	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/model"
)

type markerResponse struct {
	Symbol string                 `json:"symbol"`
	Marker string                 `json:"marker"`
	Series []model.IndicatorPoint `json:"series,omitempty"`
	MACD   *model.MACDResult      `json:"macd,omitempty"`
	Bands  []model.BandPoint      `json:"bands,omitempty"`
	Stoch  *model.StochResult     `json:"stoch,omitempty"`
}

// HealthCheck handles GET /health requests
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

// GetStocks handles GET /stocks
func (h *APIHandler) GetStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stocks": h.service.Stocks()})
}

// GetMarkers handles GET /analysis/ta/stockmarkers
func (h *APIHandler) GetMarkers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"markers": h.service.Markers()})
}

// GetMarker handles GET /analysis/ta/stockmarker/:ticker/:markerid
func (h *APIHandler) GetMarker(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Param("ticker"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	markerID, err := h.validator.ValidateMarker(c.Param("markerid"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	res, err := h.service.Marker(ctx, symbol, markerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, markerResponse{
		Symbol: symbol,
		Marker: res.Marker,
		Series: res.Series,
		MACD:   res.MACD,
		Bands:  res.Bands,
		Stoch:  res.Stoch,
	})
}

// GetExplanation handles GET /analysis/:ticker/explanation
func (h *APIHandler) GetExplanation(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Param("ticker"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	res, err := h.service.Explain(ctx, symbol)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTicks handles GET /ticks/:symbol?window=&date=
func (h *APIHandler) GetTicks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Param("symbol"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	window, date, err := h.validator.ValidateTicksQuery(c.Query("window"), c.Query("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	ticks, err := h.service.Ticks(ctx, symbol, window, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if ticks == nil {
		ticks = []model.Tick{}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "ticks": ticks})
}

// GetFundamentals handles GET /fundamentals/:symbol
func (h *APIHandler) GetFundamentals(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Param("symbol"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	snap, err := h.service.Fundamentals(ctx, symbol)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "fundamentals": snap})
}

// statusFor maps a service error to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	var ide *calculator.InsufficientDataError
	switch {
	case errors.Is(err, catalog.ErrUnknownSymbol):
		return http.StatusNotFound, "Unknown symbol"
	case errors.Is(err, advisor.ErrNoFundamentals):
		return http.StatusNotFound, "No fundamentals found for this symbol"
	case errors.Is(err, calculator.ErrUnsupportedMarker):
		return http.StatusBadRequest, "Unknown marker"
	case errors.As(err, &ide):
		return http.StatusBadRequest, "Not enough data for " + ide.Marker
	case errors.Is(err, calculator.ErrInsufficientData):
		return http.StatusBadRequest, "Not enough data for this marker"
	case errors.Is(err, advisor.ErrInvalidDate):
		return http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD."
	case errors.Is(err, calculator.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// handleError logs the error and sends the mapped HTTP response
func (h *APIHandler) handleError(c *gin.Context, err error) {
	status, msg := statusFor(err)

	ev := h.log.Debug()
	if status >= http.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Str("request_id", c.GetString(RequestIDContextKey)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Err(err).
		Msg("request failed")

	c.JSON(status, gin.H{"error": msg})
}
