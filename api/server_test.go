package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tax-dashboard/core/indicator"
	"tax-dashboard/core/tax"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry, err := tax.NewRegistryWith(tax.BuiltinSchedules()...)
	require.NoError(t, err)
	return NewServer("test", registry, nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestTaxEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/tax", `{"income": 200000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp TaxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "current", resp.Assessment.Schedule)
	assert.Equal(t, "60667", resp.Assessment.Tax.String())
	assert.Equal(t, "A$60,667.00", resp.Display.Tax)
	assert.Equal(t, "A$139,333.00", resp.Display.NetIncome)
}

func TestTaxEndpointNamedSchedule(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/tax", `{"income": "200000", "schedule": "proposed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TaxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "56138", resp.Assessment.Tax.String())
}

func TestTaxEndpointCustomBrackets(t *testing.T) {
	s := newTestServer(t)
	body := `{"income": 30000, "currency": "USD", "brackets": [{"up_to": "10000", "rate": "0"}, {"rate": "0.2"}]}`
	w := do(t, s, http.MethodPost, "/tax", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TaxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "custom", resp.Assessment.Schedule)
	assert.Equal(t, "4000", resp.Assessment.Tax.String())
	assert.Equal(t, "$4,000.00", resp.Display.Tax)
}

func TestTaxEndpointErrors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"negative income", `{"income": -100}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"unknown schedule", `{"income": 1, "schedule": "2031"}`, http.StatusNotFound, "NOT_FOUND"},
		{"bounded final bracket", `{"income": 1, "brackets": [{"up_to": 10, "rate": 0.1}]}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"schedule and brackets", `{"income": 1, "schedule": "current", "brackets": [{"rate": 0.1}]}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"malformed json", `{"income":`, http.StatusBadRequest, "INVALID_JSON"},
		{"unknown field", `{"salary": 1}`, http.StatusBadRequest, "INVALID_JSON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/tax", tc.body)
			assert.Equal(t, tc.status, w.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.RequestID)
		})
	}
}

func TestCompareEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/compare", `{"income": 200000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "-4529", resp.Comparison.Delta.String())
	assert.Equal(t, "-A$4,529.00", resp.Display.Delta)

	w = do(t, s, http.MethodPost, "/compare", `{"income": 1, "base": "1999"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareEndpointWithoutBuiltins(t *testing.T) {
	custom := tax.ProposedSchedule()
	custom.Name = "2030"
	registry, err := tax.NewRegistryWith(custom)
	require.NoError(t, err)
	s := NewServer("test", registry, nil)

	w := do(t, s, http.MethodPost, "/compare", `{"income": 200000}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INPUT_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Message, "proposed schedule is required")

	w = do(t, s, http.MethodPost, "/compare", `{"income": 200000, "proposed": "2030"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2030", resp.Comparison.Base.Schedule)
	assert.True(t, resp.Comparison.Delta.IsZero())
}

func TestSchedulesEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/schedules", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SchedulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "current", resp.Default)
	require.Len(t, resp.Schedules, 2)
	assert.Len(t, resp.Schedules[0].Brackets, 5)
	assert.Nil(t, resp.Schedules[0].Brackets[4].UpTo)
}

func TestSMAEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := `{"short_window": 2, "long_window": 4, "closes": [
		{"date": "2020-01-01T00:00:00Z", "close": "10"},
		{"date": "2020-01-02T00:00:00Z", "close": "9"},
		{"date": "2020-01-03T00:00:00Z", "close": "8"},
		{"date": "2020-01-04T00:00:00Z", "close": "7"},
		{"date": "2020-01-05T00:00:00Z", "close": "6"},
		{"date": "2020-01-06T00:00:00Z", "close": "8"},
		{"date": "2020-01-07T00:00:00Z", "close": "12"}
	]}`
	w := do(t, s, http.MethodPost, "/sma", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analysis indicator.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	require.Len(t, analysis.Crossovers, 1)
	assert.Equal(t, indicator.GoldenCross, analysis.Crossovers[0].Kind)

	w = do(t, s, http.MethodPost, "/sma", `{"short_window": 5, "long_window": 3, "closes": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthVersionAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = do(t, s, http.MethodGet, "/version", "")
	assert.Contains(t, w.Body.String(), `"version":"test"`)

	do(t, s, http.MethodPost, "/tax", `{"income": 1000}`)
	w = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tax_calculations_total{schedule="current"} 1`)
	assert.Contains(t, w.Body.String(), `http_requests_total{endpoint="tax",method="POST",status="200"} 1`)
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/tax", bytes.NewBufferString(`{"income": -1}`))
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"request_id":"abc-123"`)
}
