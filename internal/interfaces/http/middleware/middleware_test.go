package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canteen/client/internal/domain/shared"
	"github.com/canteen/client/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"generated when missing", "", false},
		{"kept when supplied", "kiosk-7", true},
		{"replaced when too long", strings.Repeat("x", MaxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = GetRequestID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.wantSame {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, float64(3), counterValue(t, reg, "/api/cart", "200"))
	assert.Equal(t, float64(1), counterValue(t, reg, "unmatched", "404"))

	_, err = NewHTTPMetrics(reg)
	assert.Error(t, err, "registering twice fails")
}

// counterValue reads canteen_kiosk_http_requests_total for a GET on route
func counterValue(t *testing.T, reg *prometheus.Registry, route, status string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "canteen_kiosk_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == "GET" && labels["route"] == route && labels["status_code"] == status {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

type bindTarget struct {
	ItemID string `json:"itemId" binding:"required"`
	Method string `json:"paymentMethod" binding:"omitempty,oneof=cash online"`
	Notes  string `json:"notes" binding:"max=5"`
	Table  int    `json:"tableNumber" binding:"omitempty,gt=0"`
}

func TestValidation(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.Use(RequestID())
	r.POST("/", func(c *gin.Context) {
		var req bindTarget
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"paymentMethod":"card","notes":"no onion","tableNumber":-2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ERR_VALIDATION", body.Error.Code)
	require.Len(t, body.Error.Details, 4)
	assert.Equal(t, "itemId", body.Error.Details[0].Field)
	assert.Equal(t, "Required", body.Error.Details[0].Message)
	assert.Equal(t, "One of cash, online", body.Error.Details[1].Message)
	assert.Equal(t, "notes", body.Error.Details[2].Field)
	assert.Equal(t, "At most 5 characters", body.Error.Details[2].Message)
	assert.Equal(t, "tableNumber", body.Error.Details[3].Field)
	assert.Equal(t, "Must be above 0", body.Error.Details[3].Message)
}

func TestTracingDisabledPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: false})...)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestTracingEnabled(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "canteen-kiosk"})...)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		check    func() error
		wantCode int
	}{
		{"allowed", func() error { return nil }, http.StatusOK},
		{"signed out", func() error { return shared.ErrUnauthorized }, http.StatusUnauthorized},
		{"wrong role", func() error { return shared.ErrForbidden }, http.StatusForbidden},
		{"plain error", func() error { return errors.New("store locked") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), Guard(tt.check))
			r.GET("/board", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/board", nil))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				var resp dto.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.NotEmpty(t, resp.Error.RequestID)
			}
		})
	}
}
