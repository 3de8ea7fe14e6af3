package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	apihttp "github.com/x402dash/x402dash/adapters/http"
	"github.com/x402dash/x402dash/adapters/metrics"
)

func bodyHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

// TestReservedPathsProtection verifies that the instrumented application,
// mounted as the catch-all fallback, never shadows the dashboards or the
// ambient endpoints.
func TestReservedPathsProtection(t *testing.T) {
	router := apihttp.NewRouter(apihttp.NewHealthHandler(nil), zerolog.Nop(), apihttp.RouterConfig{
		Metrics:       metrics.NewWithRegistry(prometheus.NewRegistry()),
		EnableMetrics: true,
		SellerPath:    "/x402-dashboard/api",
		SellerHandler: bodyHandler("SELLER"),
		BuyerPath:     "/x402-buyer-dashboard/api",
		BuyerHandler:  bodyHandler("BUYER"),
		Fallback:      bodyHandler("APP"),
	})

	tests := []struct {
		path     string
		wantBody string
	}{
		{"/x402-dashboard/api/overview", "SELLER"},
		{"/x402-dashboard/api/events/u-1", "SELLER"},
		{"/x402-buyer-dashboard/api/overview", "BUYER"},
		{"/health", `"status":"ok"`},
		{"/version", `"service":"x402dash"`},
		{"/metrics", "# HELP"},
		{"/api/v1/chat", "APP"},
		{"/x402-dashboard-lookalike", "APP"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if body := rec.Body.String(); !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %q, want to contain %q", body, tt.wantBody)
			}
		})
	}
}

// TestReservedPathsWithCustomBasePaths verifies that configured dashboard paths are normalized.
func TestReservedPathsWithCustomBasePaths(t *testing.T) {
	router := apihttp.NewRouter(apihttp.NewHealthHandler(nil), zerolog.Nop(), apihttp.RouterConfig{
		SellerPath:    "ops/seller/",
		SellerHandler: bodyHandler("SELLER"),
		BuyerPath:     "/ops/buyer/",
		BuyerHandler:  bodyHandler("BUYER"),
		Fallback:      bodyHandler("APP"),
	})

	tests := []struct {
		path     string
		wantBody string
	}{
		{"/ops/seller/overview", "SELLER"},
		{"/ops/buyer/categories", "BUYER"},
		{"/x402-dashboard/api/overview", "APP"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if body := rec.Body.String(); !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %q, want to contain %q", body, tt.wantBody)
			}
		})
	}
}
