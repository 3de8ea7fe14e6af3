package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// x402 request headers read by the auto-logging adapters.
const (
	HeaderAgentID    = "X-402-Agent-Id"
	HeaderNetwork    = "X-402-Network"
	HeaderAsset      = "X-402-Asset"
	HeaderAmount     = "X-402-Amount"
	HeaderTxHash     = "X-402-TxHash"
	HeaderBillingKey = "X-402-Billing-Key"
	HeaderBuyerID    = "X-402-Buyer-Id"
)

const maxUserAgent = 500

// UsageStatusFromHTTP maps a response code onto a seller status:
// 402 is PAYMENT_REQUIRED, 2xx is SUCCESS, anything else UNKNOWN_ERROR.
func UsageStatusFromHTTP(code int) usage.Status {
	switch {
	case code == http.StatusPaymentRequired:
		return usage.StatusPaymentRequired
	case code >= 200 && code < 300:
		return usage.StatusSuccess
	default:
		return usage.StatusUnknownError
	}
}

// AutoLogger turns served requests into seller usage events.
// Enabled state and skipped prefixes can be changed at runtime.
type AutoLogger struct {
	usage   *app.UsageLogger
	clock   ports.Clock
	logger  zerolog.Logger
	enabled atomic.Bool
	skip    atomic.Pointer[[]string]
}

// NewAutoLogger creates an enabled AutoLogger that ignores requests under skip.
func NewAutoLogger(l *app.UsageLogger, clock ports.Clock, skip []string, logger zerolog.Logger) *AutoLogger {
	a := &AutoLogger{
		usage:  l,
		clock:  clock,
		logger: logger.With().Str("component", "autolog").Logger(),
	}
	a.enabled.Store(true)
	a.SetSkipPrefixes(skip)
	return a
}

// SetEnabled turns auto-logging on or off.
func (a *AutoLogger) SetEnabled(on bool) {
	a.enabled.Store(on)
}

// Enabled reports whether requests are being logged.
func (a *AutoLogger) Enabled() bool {
	return a.enabled.Load()
}

// SetSkipPrefixes replaces the path prefixes that are never logged.
func (a *AutoLogger) SetSkipPrefixes(skip []string) {
	cleaned := make([]string, 0, len(skip))
	for _, p := range skip {
		if p != "" {
			cleaned = append(cleaned, cleanPath(p))
		}
	}
	a.skip.Store(&cleaned)
}

func (a *AutoLogger) skipped(path string) bool {
	if isInternal(path) {
		return true
	}
	for _, p := range *a.skip.Load() {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Middleware logs every request outside the skipped paths after it is served.
// The event is written in a deferred block, so a panicking handler is recorded
// as UNKNOWN_ERROR before the panic continues to the recoverer.
func (a *AutoLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() || a.skipped(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := a.clock.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()

			code := ww.Status()
			switch {
			case rec != nil:
				code = http.StatusInternalServerError
			case code == 0:
				code = http.StatusOK
			}

			e := usage.Event{
				AgentID:   r.Header.Get(HeaderAgentID),
				Method:    r.Method,
				Endpoint:  r.URL.Path,
				Network:   r.Header.Get(HeaderNetwork),
				Asset:     r.Header.Get(HeaderAsset),
				Status:    UsageStatusFromHTTP(code),
				ClientIP:  ClientIP(r),
				UserAgent: truncate(r.UserAgent(), maxUserAgent),
				LatencyMs: app.Millis(a.clock.Now().Sub(start)),
			}
			if rec != nil {
				e.ErrorMessage = fmt.Sprintf("panic: %v", rec)
			}
			if _, err := a.usage.Log(context.WithoutCancel(r.Context()), e); err != nil {
				a.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("request not logged")
			}

			if rec != nil {
				panic(rec)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// latencySince is shared by the transports.
func latencySince(clock ports.Clock, start time.Time) *int64 {
	return app.Millis(clock.Now().Sub(start))
}
