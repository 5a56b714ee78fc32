package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecoveryReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestRequestLoggerCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.Nop()))
	r.GET("/api/habits/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	before := testutil.ToFloat64(metrics.ReqCount.WithLabelValues(http.MethodGet, "/api/habits/:id", "204"))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/habits/"+id, nil))
	}

	after := testutil.ToFloat64(metrics.ReqCount.WithLabelValues(http.MethodGet, "/api/habits/:id", "204"))
	if after-before != 2 {
		t.Fatalf("expected 2 requests counted under route template, got %v", after-before)
	}
}
