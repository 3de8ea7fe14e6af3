// Package dashboard provides the seller and buyer dashboard JSON APIs.
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	apihttp "github.com/x402dash/x402dash/adapters/http"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/pkg/jsonapi"
)

const (
	maxLimit    = 1000
	maxPageSize = 1000
	maxBodySize = 1 << 20
)

// Config holds the defaults a dashboard applies to omitted parameters.
type Config struct {
	OverviewDays int // window for overview and top lists
	DailyDays    int // window for the daily chart
	TopLimit     int // default limit for ranked lists
	RecentLimit  int
	PageSize     int
}

// SellerDefaults are the seller dashboard defaults.
func SellerDefaults() Config {
	return Config{OverviewDays: 7, DailyDays: 30, TopLimit: 10, RecentLimit: 20, PageSize: 50}
}

// BuyerDefaults are the buyer dashboard defaults.
func BuyerDefaults() Config {
	return Config{OverviewDays: 30, DailyDays: 30, TopLimit: 10, RecentLimit: 10, PageSize: 50}
}

func (c Config) withDefaults(def Config) Config {
	if c.OverviewDays <= 0 {
		c.OverviewDays = def.OverviewDays
	}
	if c.DailyDays <= 0 {
		c.DailyDays = def.DailyDays
	}
	if c.TopLimit <= 0 {
		c.TopLimit = def.TopLimit
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = def.RecentLimit
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	return c
}

// responder writes documents and maps errors for one dashboard.
type responder struct {
	logger zerolog.Logger
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	apihttp.WriteError(r.Context(), w, rs.logger, err)
}

func writePage[R any](w http.ResponseWriter, r *http.Request, p app.Page[R]) {
	jsonapi.WritePage(w, nonNil(p.Items), jsonapi.NewPagination(p.Total, p.Page, p.Size, r.URL.RequestURI()))
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// routeErrors answers unknown routes and methods with JSON:API documents.
func routeErrors(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusNotFound, "not_found", "Not Found").
			Detailf("No route for %s %s", r.Method, r.URL.Path).
			Build())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed").
			Detailf("%s is not allowed on %s", r.Method, r.URL.Path).
			Build())
	})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Invalid("body", "", err.Error())
	}
	return nil
}

// demoRequest reads count and days for demo generation.
func demoRequest(p *params) (count, days int) {
	count = p.integer("count", app.DefaultDemoCount, 1, app.MaxDemoCount)
	days = p.integer("days", app.DefaultDemoDays, 1, app.MaxDemoDays)
	return count, days
}
