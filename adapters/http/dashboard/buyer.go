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
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/pkg/jsonapi"
)

// BuyerHandler serves the buyer spending dashboard API.
type BuyerHandler struct {
	analytics *app.SpendingAnalytics
	spending  *app.SpendingLogger
	demo      *app.DemoGenerator
	auth      *BasicAuth
	cfg       Config
	responder
}

// BuyerDeps contains dependencies for the buyer dashboard.
type BuyerDeps struct {
	Analytics *app.SpendingAnalytics
	Logger    *app.SpendingLogger
	Demo      *app.DemoGenerator // optional
	Auth      *BasicAuth         // optional
	Config    Config
	Log       zerolog.Logger
}

// NewBuyerHandler creates the buyer dashboard handler.
func NewBuyerHandler(deps BuyerDeps) *BuyerHandler {
	return &BuyerHandler{
		analytics: deps.Analytics,
		spending:  deps.Logger,
		demo:      deps.Demo,
		auth:      deps.Auth,
		cfg:       deps.Config.withDefaults(BuyerDefaults()),
		responder: responder{logger: deps.Log.With().Str("handler", "buyer_dashboard").Logger()},
	}
}

// Router returns the buyer dashboard router.
func (h *BuyerHandler) Router() chi.Router {
	r := chi.NewRouter()
	routeErrors(r)
	if h.auth != nil {
		r.Use(h.auth.Middleware)
	}

	r.Get("/overview", h.Overview)
	r.Get("/services/top", h.TopServices)
	r.Get("/categories", h.ByCategory)
	r.Get("/daily", h.Daily)
	r.Get("/transactions", h.ListTransactions)
	r.Get("/transactions/recent", h.RecentTransactions)
	r.Get("/transactions/{id}", h.GetTransaction)
	r.Post("/transactions", h.CreateTransaction)

	if h.demo != nil {
		r.Post("/demo/generate", h.GenerateDemo)
		r.Delete("/demo/clear", h.ClearDemo)
	}
	return r
}

func (h *BuyerHandler) params(r *http.Request) *params {
	return newParams(r, h.analytics.Location(), h.analytics.Now())
}

// buyerID returns the buyerId parameter or the configured default buyer.
func (h *BuyerHandler) buyerID(p *params) string {
	if id := p.str("buyerId"); id != "" {
		return id
	}
	if id := h.spending.Config().DefaultBuyerID; id != "" {
		return id
	}
	return app.FallbackBuyerID
}

// Overview returns the buyer's spending summary.
//
//	@Summary		Buyer overview
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Param			buyerId	query		string	false	"Buyer (defaults to the configured buyer)"
//	@Param			from	query		string	false	"Range start"
//	@Param			to		query		string	false	"Range end"
//	@Success		200		{object}	OverviewView
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/overview [get]
func (h *BuyerHandler) Overview(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	o, err := h.analytics.Overview(r.Context(), query.Filter{ActorID: h.buyerID(p), From: from, To: to})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newOverviewView(o))
}

// TopServices ranks services by spend.
//
//	@Summary		Top services
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Param			limit	query	int	false	"Maximum services"	default(10)
//	@Success		200		{array}	ServiceView
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/services/top [get]
func (h *BuyerHandler) TopServices(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	limit := p.integer("limit", h.cfg.TopLimit, 1, maxLimit)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	groups, err := h.analytics.GroupBy(r.Context(), query.DimService, query.Filter{ActorID: h.buyerID(p), From: from, To: to}, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newServiceViews(groups))
}

// ByCategory breaks spend down by service category.
//
//	@Summary		Spend by category
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Success		200	{array}	GroupView
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/categories [get]
func (h *BuyerHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	groups, err := h.analytics.GroupBy(r.Context(), query.DimCategory, query.Filter{ActorID: h.buyerID(p), From: from, To: to}, aggregate.Unlimited)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, newGroupViews(groups))
}

// Daily returns per-day spend.
//
//	@Summary		Daily spend
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Success		200	{array}	aggregate.DateBucket
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/daily [get]
func (h *BuyerHandler) Daily(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.DailyDays)
	status := p.spendingStatus()
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	buckets, err := h.analytics.Daily(r.Context(), query.Filter{ActorID: h.buyerID(p), From: from, To: to}, string(status))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, nonNil(buckets))
}

// ListTransactions returns one page of transactions, newest first.
//
//	@Summary		List transactions
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Param			serviceId	query		string	false	"Service filter"
//	@Param			status		query		string	false	"Status filter"
//	@Param			category	query		string	false	"Category filter"
//	@Param			page		query		int		false	"Zero-based page"	default(0)
//	@Param			size		query		int		false	"Page size"			default(50)
//	@Success		200			{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/transactions [get]
func (h *BuyerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	from, to := p.window(h.cfg.OverviewDays)
	status := p.spendingStatus()
	category := p.category()
	page := p.integer("page", 0, 0, 1<<30)
	size := p.integer("size", h.cfg.PageSize, 1, maxPageSize)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	f := query.Filter{
		ActorID:   h.buyerID(p),
		ServiceID: p.str("serviceId"),
		Status:    string(status),
		Category:  string(category),
		From:      from,
		To:        to,
		Page:      page,
		Size:      size,
	}
	result, err := h.analytics.Events(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writePage(w, r, result)
}

// RecentTransactions returns the buyer's newest transactions across all time.
//
//	@Summary		Recent transactions
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Param			limit	query	int	false	"Maximum transactions"	default(10)
//	@Success		200		{array}	spending.Event
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/transactions/recent [get]
func (h *BuyerHandler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	limit := p.integer("limit", h.cfg.RecentLimit, 1, maxLimit)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	events, err := h.analytics.Recent(r.Context(), h.buyerID(p), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, nonNil(events))
}

// GetTransaction returns one transaction.
//
//	@Summary		Get transaction
//	@Tags			Buyer Dashboard
//	@Produce		json
//	@Param			id	path		string	true	"Transaction ID"
//	@Success		200	{object}	spending.Event
//	@Failure		404	{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/transactions/{id} [get]
func (h *BuyerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	e, err := h.analytics.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusOK, e)
}

// SpendingEventRequest is the body accepted by POST /transactions.
type SpendingEventRequest struct {
	BuyerID      string     `json:"buyerId"`
	BuyerName    string     `json:"buyerName"`
	ServiceID    string     `json:"serviceId"`
	ServiceName  string     `json:"serviceName"`
	ServiceURL   string     `json:"serviceUrl"`
	Endpoint     string     `json:"endpoint"`
	Method       string     `json:"method"`
	Category     string     `json:"category"`
	Network      string     `json:"network"`
	Asset        string     `json:"asset"`
	AmountAtomic *int64     `json:"amountAtomic"`
	TxHash       string     `json:"txHash"`
	PaymentID    string     `json:"paymentId"`
	Status       string     `json:"status" example:"SUCCESS"`
	BudgetID     string     `json:"budgetId"`
	ProjectID    string     `json:"projectId"`
	CreatedAt    *time.Time `json:"createdAt"` // omitted means now
	RequestedAt  *time.Time `json:"requestedAt"`
	SettledAt    *time.Time `json:"settledAt"`
	LatencyMs    *int64     `json:"latencyMs"`
	ClientIP     string     `json:"clientIp"`
	UserAgent    string     `json:"userAgent"`
	ErrorMessage string     `json:"errorMessage"`
	Metadata     string     `json:"metadata"`
}

func (req SpendingEventRequest) event() (spending.Event, error) {
	if req.Status == "" {
		return spending.Event{}, errs.Invalid("status", "", "is required")
	}
	status, err := spending.ParseStatus(req.Status)
	if err != nil {
		return spending.Event{}, err
	}
	var category spending.Category
	if req.Category != "" {
		if category, err = spending.ParseCategory(req.Category); err != nil {
			return spending.Event{}, err
		}
	}
	e := spending.Event{
		BuyerID:      req.BuyerID,
		BuyerName:    req.BuyerName,
		ServiceID:    req.ServiceID,
		ServiceName:  req.ServiceName,
		ServiceURL:   req.ServiceURL,
		Endpoint:     req.Endpoint,
		Method:       req.Method,
		Category:     category,
		Network:      req.Network,
		Asset:        req.Asset,
		AmountAtomic: req.AmountAtomic,
		TxHash:       req.TxHash,
		PaymentID:    req.PaymentID,
		Status:       status,
		BudgetID:     req.BudgetID,
		ProjectID:    req.ProjectID,
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

// CreateTransaction logs one spending event.
//
//	@Summary		Log transaction
//	@Tags			Buyer Dashboard
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SpendingEventRequest	true	"Transaction"
//	@Success		201		{object}	spending.Event
//	@Failure		400		{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/transactions [post]
func (h *BuyerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req SpendingEventRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := req.event()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	e.ClientIP = apihttp.ClientIP(r)
	e.UserAgent = r.UserAgent()

	stored, err := h.spending.Log(r.Context(), e)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+stored.ID)
	jsonapi.WriteData(w, http.StatusCreated, stored)
}

// GenerateDemo fills the buyer ledger with sample transactions.
//
//	@Summary		Generate demo data
//	@Tags			Buyer Dashboard
//	@Param			count	query		int	false	"Transactions to generate"	default(100)
//	@Param			days	query		int	false	"Days to spread over"		default(30)
//	@Success		201		{object}	app.DemoSummary
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/demo/generate [post]
func (h *BuyerHandler) GenerateDemo(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	count, days := demoRequest(p)
	if p.err != nil {
		h.fail(w, r, p.err)
		return
	}

	sum, err := h.demo.GenerateSpending(r.Context(), count, days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteData(w, http.StatusCreated, sum)
}

// ClearDemo deletes every buyer transaction.
//
//	@Summary		Clear all transactions
//	@Tags			Buyer Dashboard
//	@Success		204
//	@Security		BasicAuth
//	@Router			/x402-buyer-dashboard/api/demo/clear [delete]
func (h *BuyerHandler) ClearDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.ClearAll(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	jsonapi.WriteNoContent(w)
}
