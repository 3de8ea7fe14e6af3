package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// UsageTransport is an http.RoundTripper that records every outgoing call
// as a seller usage event. Payment details are read from the X-402-*
// request headers.
type UsageTransport struct {
	base   http.RoundTripper
	usage  *app.UsageLogger
	clock  ports.Clock
	logger zerolog.Logger
}

// NewUsageTransport wraps base (nil means http.DefaultTransport).
func NewUsageTransport(base http.RoundTripper, l *app.UsageLogger, clock ports.Clock, logger zerolog.Logger) *UsageTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &UsageTransport{
		base:   base,
		usage:  l,
		clock:  clock,
		logger: logger.With().Str("component", "usage_transport").Logger(),
	}
}

// RoundTrip executes req and logs its outcome. Logging failures never
// change the response or error returned to the caller.
func (t *UsageTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := t.clock.Now()
	resp, err := t.base.RoundTrip(req)

	e := usage.Event{
		AgentID:    req.Header.Get(HeaderAgentID),
		Method:     req.Method,
		Endpoint:   req.URL.String(),
		BillingKey: req.Header.Get(HeaderBillingKey),
		Network:    req.Header.Get(HeaderNetwork),
		Asset:      req.Header.Get(HeaderAsset),
		TxHash:     req.Header.Get(HeaderTxHash),
		LatencyMs:  latencySince(t.clock, start),
	}
	// An unparseable amount is dropped; the call itself is still recorded.
	if v := req.Header.Get(HeaderAmount); v != "" {
		if n, perr := strconv.ParseInt(v, 10, 64); perr == nil && n >= 0 {
			e.AmountAtomic = &n
		}
	}
	if err != nil {
		e.Status = usage.StatusUnknownError
		e.ErrorMessage = err.Error()
	} else {
		e.Status = UsageStatusFromHTTP(resp.StatusCode)
	}

	if _, logErr := t.usage.Log(context.WithoutCancel(req.Context()), e); logErr != nil {
		t.logger.Warn().Err(logErr).Str("url", e.Endpoint).Msg("outgoing call not logged")
	}
	return resp, err
}

// ParseServiceMapping parses "host:serviceId,host2:serviceId2".
// Hosts are matched case-insensitively; whitespace around entries is ignored.
func ParseServiceMapping(s string) (map[string]string, error) {
	m := make(map[string]string)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		host, id, ok := strings.Cut(entry, ":")
		host, id = strings.TrimSpace(host), strings.TrimSpace(id)
		if !ok || host == "" || id == "" {
			return nil, errs.Invalid("service_id_mapping", entry, "expected host:serviceId")
		}
		m[strings.ToLower(host)] = id
	}
	return m, nil
}

// SpendingTransport is an http.RoundTripper that records every outgoing
// purchase as a buyer spending event.
type SpendingTransport struct {
	base     http.RoundTripper
	spending *app.SpendingLogger
	clock    ports.Clock
	logger   zerolog.Logger
	services atomic.Pointer[map[string]string]
}

// NewSpendingTransport wraps base (nil means http.DefaultTransport).
// services maps request hosts to service ids; unmapped hosts use the host itself.
func NewSpendingTransport(base http.RoundTripper, l *app.SpendingLogger, clock ports.Clock, services map[string]string, logger zerolog.Logger) *SpendingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &SpendingTransport{
		base:     base,
		spending: l,
		clock:    clock,
		logger:   logger.With().Str("component", "spending_transport").Logger(),
	}
	t.SetServiceMapping(services)
	return t
}

// SetServiceMapping replaces the host to service id mapping.
func (t *SpendingTransport) SetServiceMapping(services map[string]string) {
	m := make(map[string]string, len(services))
	for host, id := range services {
		m[strings.ToLower(host)] = id
	}
	t.services.Store(&m)
}

func (t *SpendingTransport) serviceID(host string) string {
	host = strings.ToLower(host)
	if id, ok := (*t.services.Load())[host]; ok {
		return id
	}
	return host
}

// RoundTrip executes req and logs its outcome: 2xx is SUCCESS, 402 is
// PAYMENT_REQUIRED, a transport error or any other status is FAILED.
func (t *SpendingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := t.clock.Now()
	resp, err := t.base.RoundTrip(req)

	e := spending.Event{
		BuyerID:    req.Header.Get(HeaderBuyerID),
		ServiceID:  t.serviceID(req.URL.Hostname()),
		ServiceURL: req.URL.Scheme + "://" + req.URL.Host,
		Endpoint:   req.URL.Path,
		Method:     req.Method,
		Network:    req.Header.Get(HeaderNetwork),
		Asset:      req.Header.Get(HeaderAsset),
		TxHash:     req.Header.Get(HeaderTxHash),
		LatencyMs:  latencySince(t.clock, start),
	}
	switch {
	case err != nil:
		e.Status = spending.StatusFailed
		e.ErrorMessage = err.Error()
	case resp.StatusCode == http.StatusPaymentRequired:
		e.Status = spending.StatusPaymentRequired
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		e.Status = spending.StatusSuccess
		if v := req.Header.Get(HeaderAmount); v != "" {
			if n, perr := strconv.ParseInt(v, 10, 64); perr == nil && n >= 0 {
				e.AmountAtomic = &n
			}
		}
	default:
		e.Status = spending.StatusFailed
		e.ErrorMessage = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	if _, logErr := t.spending.Log(context.WithoutCancel(req.Context()), e); logErr != nil {
		t.logger.Warn().Err(logErr).Str("service", e.ServiceID).Msg("outgoing purchase not logged")
	}
	return resp, err
}
