package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	apihttp "github.com/x402dash/x402dash/adapters/http"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/pkg/jsonapi"
)

// SellerHandler serves the seller usage dashboard API.
type SellerHandler struct {
	analytics *app.UsageAnalytics
	usage     *app.UsageLogger
	demo      *app.DemoGenerator
	auth      *BasicAuth
	cfg       Config
	responder
}

// SellerDeps contains dependencies for the seller dashboard.
type SellerDeps struct {
	Analytics *app.UsageAnalytics
	Logger    *app.UsageLogger
	Demo      *app.DemoGenerator // optional; demo routes are omitted when nil
	Auth      *BasicAuth         // optional
	Config    Config
	Log       zerolog.Logger
}

// NewSellerHandler creates the seller dashboard handler.
func NewSellerHandler(deps SellerDeps) *SellerHandler {
	return &SellerHandler{
		analytics: deps.Analytics,
		usage:     deps.Logger,
		demo:      deps.Demo,
		auth:      deps.Auth,
		cfg:       deps.Config.withDefaults(SellerDefaults()),
		responder: responder{logger: deps.Log.With().Str("handler", "seller_dashboard").Logger()},
	}
}

// Router returns the seller dashboard router.
func (h *SellerHandler) Router() chi.Router {
	r := chi.NewRouter()
	routeErrors(r)
	if h.auth != nil {
		r.Use(h.auth.Middleware)
	}

	r.Get("/overview", h.Overview)
	r.Get("/agents/top", h.TopAgents)
	r.Get("/endpoints/top", h.TopEndpoints)
	r.Get("/status", h.ByStatus)
	r.Get("/daily", h.Daily)
	r.Get("/events", h.ListEvents)
	r.Get("/events/recent", h.RecentEvents)
	r.Get("/events/{id}", h.GetEvent)
	r.Post("/events", h.CreateEvent)

	if h.demo != nil {
		r.Post("/demo/generate", h.GenerateDemo)
		r.Delete("/demo/clear", h.ClearDemo)
	}
	return r
}

func (h *SellerHandler) params(r *http.Request) *params {
	return newParams(r, h.analytics.Location(), h.analytics.Now())
}

// Overview returns headline totals.
//
//	@Summary		Seller overview
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			tenantId	query		string	false	"Tenant filter"
//	@Param			from		query		string	false	"Range start (RFC3339 or YYYY-MM-DD)"
//	@Param			to			query		string	false	"Range end (RFC3339 or YYYY-MM-DD)"
//	@Success		200			{object}	OverviewView
//	@Failure		400			{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/overview [get]
func (h *SellerHandler) Overview(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	o, err := h.analytics.Overview(r.Context(), query.Filter{TenantID: p.str("tenantId"), From: from, To: to})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newOverviewView(o))
}

// TopAgents ranks agents by amount.
//
//	@Summary		Top agents
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			tenantId	query	string	false	"Tenant filter"
//	@Param			from		query	string	false	"Range start"
//	@Param			to			query	string	false	"Range end"
//	@Param			status		query	string	false	"Status filter"
//	@Param			limit		query	int		false	"Maximum groups"	default(10)
//	@Success		200			{array}	GroupView
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/agents/top [get]
func (h *SellerHandler) TopAgents(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, query.DimActor)
}

// TopEndpoints ranks endpoints by amount.
//
//	@Summary		Top endpoints
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Success		200	{array}	GroupView
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/endpoints/top [get]
func (h *SellerHandler) TopEndpoints(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, query.DimEndpoint)
}

func (h *SellerHandler) top(w http.ResponseWriter, r *http.Request, dim query.Dimension) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	status := p.usageStatus()
	limit := p.integer("limit", h.cfg.TopLimit, 1, maxLimit)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	f := query.Filter{TenantID: p.str("tenantId"), Status: string(status), From: from, To: to}
	groups, err := h.analytics.GroupBy(r.Context(), dim, f, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newGroupViews(groups))
}

// ByStatus partitions every event in the window by status.
//
//	@Summary		Events by status
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Success		200	{array}	GroupView
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/status [get]
func (h *SellerHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	f := query.Filter{TenantID: p.str("tenantId"), From: from, To: to}
	groups, err := h.analytics.GroupBy(r.Context(), query.DimStatus, f, aggregate.Unlimited)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newGroupViews(groups))
}

// Daily returns per-day counts and amounts for charts.
//
//	@Summary		Daily activity
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Success		200	{array}	aggregate.DateBucket
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/daily [get]
func (h *SellerHandler) Daily(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.DailyDays)
	status := p.usageStatus()
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	buckets, err := h.analytics.Daily(r.Context(), query.Filter{TenantID: p.str("tenantId"), From: from, To: to}, string(status))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, nonNil(buckets))
}

// ListEvents returns one page of events, newest first.
//
//	@Summary		List events
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			page	query		int	false	"Zero-based page"	default(0)
//	@Param			size	query		int	false	"Page size"			default(50)
//	@Success		200		{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/events [get]
func (h *SellerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	status := p.usageStatus()
	page := p.integer("page", 0, 0, 1<<30)
	size := p.integer("size", h.cfg.PageSize, 1, maxPageSize)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	f := query.Filter{TenantID: p.str("tenantId"), Status: string(status), From: from, To: to, Page: page, Size: size}
	result, err := h.analytics.Events(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writePage(w, r, result)
}

// RecentEvents returns the newest events across all time.
//
//	@Summary		Recent events
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			tenantId	query	string	false	"Tenant or agent id"
//	@Param			limit		query	int		false	"Maximum events"	default(20)
//	@Success		200			{array}	usage.Event
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/events/recent [get]
func (h *SellerHandler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	limit := p.integer("limit", h.cfg.RecentLimit, 1, maxLimit)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	events, err := h.analytics.Recent(r.Context(), p.str("tenantId"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, nonNil(events))
}

// GetEvent returns one event.
//
//	@Summary		Get event
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	usage.Event
//	@Failure		404	{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/events/{id} [get]
func (h *SellerHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.analytics.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, e)
}

// UsageEventRequest is the body accepted by POST /events.
// Enumerations are parsed strictly.
type UsageEventRequest struct {
	TenantID     string     `json:"tenantId"`
	AgentID      string     `json:"agentId"`
	AgentType    string     `json:"agentType"`
	Method       string     `json:"method"`
	Endpoint     string     `json:"endpoint"`
	BillingKey   string     `json:"billingKey"`
	Network      string     `json:"network"`
	Asset        string     `json:"asset"`
	AmountAtomic *int64     `json:"amountAtomic"`
	TxHash       string     `json:"txHash"`
	Status       string     `json:"status" example:"SUCCESS"`
	CreatedAt    *time.Time `json:"createdAt"` // omitted means now
	RequestedAt  *time.Time `json:"requestedAt"`
	SettledAt    *time.Time `json:"settledAt"`
	LatencyMs    *int64     `json:"latencyMs"`
	ClientIP     string     `json:"clientIp"`
	UserAgent    string     `json:"userAgent"`
	ErrorMessage string     `json:"errorMessage"`
	Metadata     string     `json:"metadata"`
}

func (req UsageEventRequest) event() (usage.Event, error) {
	if req.Status == "" {
		return usage.Event{}, errs.Invalid("status", "", "is required")
	}
	status, err := usage.ParseStatus(req.Status)
	if err != nil {
		return usage.Event{}, err
	}
	var agentType usage.AgentType
	if req.AgentType != "" {
		if agentType, err = usage.ParseAgentType(req.AgentType); err != nil {
			return usage.Event{}, err
		}
	}
	e := usage.Event{
		TenantID:     req.TenantID,
		AgentID:      req.AgentID,
		AgentType:    agentType,
		Method:       req.Method,
		Endpoint:     req.Endpoint,
		BillingKey:   req.BillingKey,
		Network:      req.Network,
		Asset:        req.Asset,
		AmountAtomic: req.AmountAtomic,
		TxHash:       req.TxHash,
		Status:       status,
		RequestedAt:  req.RequestedAt,
		SettledAt:    req.SettledAt,
		LatencyMs:    req.LatencyMs,
		ClientIP:     req.ClientIP,
		UserAgent:    req.UserAgent,
		ErrorMessage: req.ErrorMessage,
		Metadata:     req.Metadata,
	}
	if req.CreatedAt != nil {
		e.CreatedAt = *req.CreatedAt
	}
	return e, nil
}

// CreateEvent logs one event.
//
//	@Summary		Log event
//	@Tags			Seller Dashboard
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UsageEventRequest	true	"Event"
//	@Success		201		{object}	usage.Event
//	@Failure		400		{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/events [post]
func (h *SellerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req UsageEventRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := req.event()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if e.ClientIP == "" {
		e.ClientIP = apihttp.ClientIP(r)
	}

	stored, err := h.usage.Log(r.Context(), e)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+stored.ID)
	jsonapi.WriteData(w, http.StatusCreated, stored)
}

// GenerateDemo fills the seller ledger with sample events.
//
//	@Summary		Generate demo data
//	@Tags			Seller Dashboard
//	@Produce		json
//	@Param			count	query		int	false	"Events to generate"	default(100)
//	@Param			days	query		int	false	"Days to spread over"	default(30)
//	@Success		201		{object}	app.DemoSummary
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/demo/generate [post]
func (h *SellerHandler) GenerateDemo(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	count, days := demoRequest(p)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	sum, err := h.demo.GenerateUsage(r.Context(), count, days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusCreated, sum)
}

// ClearDemo deletes every seller event.
//
//	@Summary		Clear all events
//	@Tags			Seller Dashboard
//	@Success		204
//	@Security		BasicAuth
//	@Router			/x402-dashboard/api/demo/clear [delete]
func (h *SellerHandler) ClearDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.ClearAll(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteNoContent(w)
}
