package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.0.2.1:5000"
	h.ServeHTTP(rec, req)
	return rec
}

func TestListCodes(t *testing.T) {
	h := New(Options{}, nil).Handler()

	rec := get(t, h, "/api/v1/codes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var codes []CodeInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &codes))
	require.Len(t, codes, 9)
	assert.Equal(t, CodeInfo{Value: 81, Name: "UnknownSubcommand", Category: "user", Description: codes[3].Description}, codes[3])
	assert.NotEmpty(t, codes[3].Description)
}

func TestExplain(t *testing.T) {
	h := New(Options{}, nil).Handler()

	tests := []struct {
		path string
		want Explanation
	}{
		{"/api/v1/codes/0", Explanation{Status: 0, Defined: true, Name: "OK", Category: "success"}},
		{"/api/v1/codes/101", Explanation{Status: 101, Defined: true, Name: "Unavailable", Category: "software"}},
		{"/api/v1/codes/130", Explanation{Status: 130, Category: "signal", Signal: 2}},
		{"/api/v1/codes/255", Explanation{Status: 255, Category: "reserved"}},
		{"/api/v1/codes/-1", Explanation{Status: -1, Category: "reserved"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			var got Explanation
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			got.Description = ""
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainRejectsNonInteger(t *testing.T) {
	rec := get(t, New(Options{}, nil).Handler(), "/api/v1/codes/eighty")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Message, `"eighty"`)
}

func TestHealthAndMetrics(t *testing.T) {
	h := New(Options{}, nil).Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/api/v1/health").Code)
	get(t, h, "/api/v1/codes/80")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `semexit_api_requests_total{handler="/api/v1/codes/{status}",method="GET",status="200"}`)
}

func TestRateLimit(t *testing.T) {
	h := New(Options{RateLimit: rate.Limit(1), RateBurst: 2}, nil).Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/api/v1/health").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/v1/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, h, "/api/v1/health").Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Options{ShutdownTimeout: time.Second}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = New(Options{Addr: ln.Addr().String()}, nil).Run(context.Background())
	assert.Error(t, err)
}
