package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MarketAdvisor/internal/advisor"
	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/model"
)

type MockAdvisorService struct {
	mock.Mock
}

func (m *MockAdvisorService) Stocks() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockAdvisorService) Markers() []model.MarkerDefinition {
	args := m.Called()
	return args.Get(0).([]model.MarkerDefinition)
}

func (m *MockAdvisorService) Marker(ctx context.Context, symbol, markerID string) (*calculator.Result, error) {
	args := m.Called(ctx, symbol, markerID)
	res, _ := args.Get(0).(*calculator.Result)
	return res, args.Error(1)
}

func (m *MockAdvisorService) Explain(ctx context.Context, symbol string) (*model.CompositeResult, error) {
	args := m.Called(ctx, symbol)
	res, _ := args.Get(0).(*model.CompositeResult)
	return res, args.Error(1)
}

func (m *MockAdvisorService) Ticks(ctx context.Context, symbol, window, date string) ([]model.Tick, error) {
	args := m.Called(ctx, symbol, window, date)
	ticks, _ := args.Get(0).([]model.Tick)
	return ticks, args.Error(1)
}

func (m *MockAdvisorService) Fundamentals(ctx context.Context, symbol string) (*model.FundamentalsSnapshot, error) {
	args := m.Called(ctx, symbol)
	snap, _ := args.Get(0).(*model.FundamentalsSnapshot)
	return snap, args.Error(1)
}

func setupRouter(svc AdvisorService) http.Handler {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	return NewAPIHandler(svc, metrics, zerolog.Nop()).SetupRoutes()
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	w := doGet(t, setupRouter(new(MockAdvisorService)), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeaderKey))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, ServiceName, body["service"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeaderKey, "abc-123")
	w := httptest.NewRecorder()
	setupRouter(new(MockAdvisorService)).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeaderKey))
}

func TestGetStocks(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Stocks").Return([]string{"AAPL", "MSFT"})

	w := doGet(t, setupRouter(svc), "/stocks")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"stocks":["AAPL","MSFT"]}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestGetMarkers(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Markers").Return(catalog.Markers())

	w := doGet(t, setupRouter(svc), "/analysis/ta/stockmarkers")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Markers []map[string]any `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Markers, 10)
	assert.Equal(t, "MA5", body.Markers[0]["id"])
	assert.Equal(t, "Moving Average 5", body.Markers[0]["name"])
	assert.NotContains(t, body.Markers[0], "MinSamples")
}

func TestGetMarkerSeries(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := new(MockAdvisorService)
	svc.On("Marker", mock.Anything, "AAPL", "MA5").Return(&calculator.Result{
		Marker: "MA5",
		Series: []model.IndicatorPoint{{Time: at, Value: 3}},
	}, nil)

	w := doGet(t, setupRouter(svc), "/analysis/ta/stockmarker/AAPL/MA5")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body["symbol"])
	assert.Equal(t, "MA5", body["marker"])
	assert.Len(t, body["series"], 1)
	assert.NotContains(t, body, "macd")
	svc.AssertExpectations(t)
}

func TestGetMarkerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown symbol",
			err:        fmt.Errorf("%w: %q", catalog.ErrUnknownSymbol, "AAPL"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Unknown symbol",
		},
		{
			name:       "unknown marker",
			err:        fmt.Errorf("%w: %q", calculator.ErrUnsupportedMarker, "MA5"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Unknown marker",
		},
		{
			name:       "not enough data",
			err:        &calculator.InsufficientDataError{Marker: "MA5", Required: 5, Got: 2},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Not enough data for MA5",
		},
		{
			name:       "store failure",
			err:        fmt.Errorf("query ticks: disk I/O error"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdvisorService)
			svc.On("Marker", mock.Anything, "AAPL", "MA5").Return(nil, tt.err)

			w := doGet(t, setupRouter(svc), "/analysis/ta/stockmarker/AAPL/MA5")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, w))
		})
	}
}

func TestGetMarkerMalformedParams(t *testing.T) {
	svc := new(MockAdvisorService)
	h := setupRouter(svc)

	w := doGet(t, h, "/analysis/ta/stockmarker/AAPL/MA-5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown marker", errorBody(t, w))

	w = doGet(t, h, "/analysis/ta/stockmarker/A$PL/MA5")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Unknown symbol", errorBody(t, w))

	svc.AssertNotCalled(t, "Marker", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetExplanation(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Explain", mock.Anything, "AAPL").Return(&model.CompositeResult{
		Ticker:          "AAPL",
		FinalSuggestion: model.Buy,
		TotalScore:      1.1,
	}, nil)

	w := doGet(t, setupRouter(svc), "/analysis/AAPL/explanation")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body["ticker"])
	assert.Equal(t, "buy", body["finalSuggestion"])
	assert.InDelta(t, 1.1, body["totalScore"], 1e-9)
}

func TestGetTicks(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Ticks", mock.Anything, "AAPL", "week", "2024-03-01").Return([]model.Tick{
		{Symbol: "AAPL", Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 10},
	}, nil)

	w := doGet(t, setupRouter(svc), "/ticks/AAPL?window=week&date=2024-03-01")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Symbol string           `json:"symbol"`
		Ticks  []map[string]any `json:"ticks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body.Symbol)
	assert.Len(t, body.Ticks, 1)
	svc.AssertExpectations(t)
}

func TestGetTicksEmptyIsArray(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Ticks", mock.Anything, "AAPL", "", "").Return(nil, nil)

	w := doGet(t, setupRouter(svc), "/ticks/AAPL")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbol":"AAPL","ticks":[]}`, w.Body.String())
}

func TestGetTicksBadDate(t *testing.T) {
	svc := new(MockAdvisorService)

	w := doGet(t, setupRouter(svc), "/ticks/AAPL?date=03-01-2024")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", errorBody(t, w))
	svc.AssertNotCalled(t, "Ticks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTicksServiceRejectsDate(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Ticks", mock.Anything, "AAPL", "", "2024-13-45").
		Return(nil, fmt.Errorf("%w: want YYYY-MM-DD", advisor.ErrInvalidDate))

	w := doGet(t, setupRouter(svc), "/ticks/AAPL?date=2024-13-45")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", errorBody(t, w))
}

func TestGetFundamentals(t *testing.T) {
	svc := new(MockAdvisorService)
	svc.On("Fundamentals", mock.Anything, "AAPL").Return(&model.FundamentalsSnapshot{
		Symbol:  "AAPL",
		AsOf:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Metrics: map[string]float64{"pe": 28.5},
	}, nil)
	svc.On("Fundamentals", mock.Anything, "MSFT").Return(nil, advisor.ErrNoFundamentals)

	h := setupRouter(svc)

	w := doGet(t, h, "/fundamentals/AAPL")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Fundamentals struct {
			Metrics map[string]float64 `json:"metrics"`
		} `json:"fundamentals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 28.5, body.Fundamentals.Metrics["pe"])

	w = doGet(t, h, "/fundamentals/MSFT")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No fundamentals found for this symbol", errorBody(t, w))
}

func TestMetricsRoute(t *testing.T) {
	w := doGet(t, setupRouter(new(MockAdvisorService)), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# metrics")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/stocks", nil)
	w := httptest.NewRecorder()
	setupRouter(new(MockAdvisorService)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSymbolMatchedExactly(t *testing.T) {
	svc := new(MockAdvisorService)
	h := setupRouter(svc)

	for _, path := range []string{"/ticks/%20AAPL", "/ticks/AAPL%20", "/fundamentals/%09AAPL"} {
		w := doGet(t, h, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Unknown symbol", errorBody(t, w), path)
	}

	svc.AssertNotCalled(t, "Ticks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "Fundamentals", mock.Anything, mock.Anything)
}

func TestValidatorKeepsParamsVerbatim(t *testing.T) {
	v := GetValidator()

	sym, err := v.ValidateSymbol("BRK.B")
	require.NoError(t, err)
	assert.Equal(t, "BRK.B", sym)

	_, err = v.ValidateSymbol(" AAPL")
	assert.ErrorIs(t, err, catalog.ErrUnknownSymbol)

	_, err = v.ValidateMarker("MA5 ")
	assert.ErrorIs(t, err, calculator.ErrUnsupportedMarker)

	window, date, err := v.ValidateTicksQuery("WEEK", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "WEEK", window)
	assert.Equal(t, "2024-03-01", date)

	_, _, err = v.ValidateTicksQuery("", " 2024-03-01")
	assert.ErrorIs(t, err, advisor.ErrInvalidDate)
}
