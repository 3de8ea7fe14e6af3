// Package spending provides the buyer-side spending event type.
// A spending Event records one outbound x402 payment attempt.
package spending

import (
	"strings"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
)

// Status is the outcome of an outbound payment.
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusPending         Status = "PENDING"
	StatusFailed          Status = "FAILED"
	StatusRejected        Status = "REJECTED"
	StatusRefunded        Status = "REFUNDED"
	StatusPaymentRequired Status = "PAYMENT_REQUIRED"
)

// Statuses lists every valid Status in declaration order.
var Statuses = []Status{
	StatusSuccess,
	StatusPending,
	StatusFailed,
	StatusRejected,
	StatusRefunded,
	StatusPaymentRequired,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus converts free text into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errs.Invalid("status", s, "unknown spending status")
	}
	return st, nil
}

// Category classifies the paid service.
type Category string

const (
	CategoryLanguageModel   Category = "AI_LANGUAGE_MODEL"
	CategoryImageGeneration Category = "AI_IMAGE_GENERATION"
	CategoryVoice           Category = "AI_VOICE"
	CategoryVideo           Category = "AI_VIDEO"
	CategoryDataAPI         Category = "DATA_API"
	CategoryStorage         Category = "STORAGE"
	CategoryCompute         Category = "COMPUTE"
	CategoryAnalytics       Category = "ANALYTICS"
	CategoryBlockchain      Category = "BLOCKCHAIN"
	CategoryOther           Category = "OTHER"
)

// Categories lists every valid Category.
var Categories = []Category{
	CategoryLanguageModel,
	CategoryImageGeneration,
	CategoryVoice,
	CategoryVideo,
	CategoryDataAPI,
	CategoryStorage,
	CategoryCompute,
	CategoryAnalytics,
	CategoryBlockchain,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory converts free text into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", errs.Invalid("category", s, "unknown service category")
	}
	return c, nil
}

// Event represents a single spending event (immutable once stored).
type Event struct {
	ID string `json:"id"`

	BuyerID   string `json:"buyerId,omitempty"`
	BuyerName string `json:"buyerName,omitempty"`

	ServiceID   string   `json:"serviceId,omitempty"`
	ServiceName string   `json:"serviceName,omitempty"`
	ServiceURL  string   `json:"serviceUrl,omitempty"`
	Endpoint    string   `json:"endpoint,omitempty"`
	Method      string   `json:"method,omitempty"`
	Category    Category `json:"category,omitempty"`

	Network      string `json:"network,omitempty"`
	Asset        string `json:"asset,omitempty"`
	AmountAtomic *int64 `json:"amountAtomic,omitempty"`
	TxHash       string `json:"txHash,omitempty"`
	PaymentID    string `json:"paymentId,omitempty"`

	Status Status `json:"status"`

	BudgetID  string `json:"budgetId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	SettledAt   *time.Time `json:"settledAt,omitempty"`

	LatencyMs    *int64 `json:"latencyMs,omitempty"`
	ClientIP     string `json:"clientIp,omitempty"`
	UserAgent    string `json:"userAgent,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Metadata     string `json:"metadata,omitempty"`
}

// Validate checks the invariants a record must hold before it is stored.
func (e Event) Validate() error {
	if e.Status == "" {
		return errs.Invalid("status", "", "is required")
	}
	if !e.Status.Valid() {
		return errs.Invalid("status", string(e.Status), "unknown spending status")
	}
	if e.Category != "" && !e.Category.Valid() {
		return errs.Invalid("category", string(e.Category), "unknown service category")
	}
	if e.AmountAtomic != nil && *e.AmountAtomic < 0 {
		return errs.Invalid("amountAtomic", "", "must not be negative")
	}
	if e.LatencyMs != nil && *e.LatencyMs < 0 {
		return errs.Invalid("latencyMs", "", "must not be negative")
	}
	return nil
}

// Timestamp returns the creation instant.
func (e Event) Timestamp() time.Time { return e.CreatedAt }

// StatusName returns the canonical status name.
func (e Event) StatusName() string { return string(e.Status) }

// Succeeded reports whether the payment counts toward spend totals.
func (e Event) Succeeded() bool { return e.Status == StatusSuccess }

// Amount returns the atomic amount, treating nil as zero.
func (e Event) Amount() int64 {
	if e.AmountAtomic == nil {
		return 0
	}
	return *e.AmountAtomic
}

// RecordID returns the store-assigned identifier.
func (e Event) RecordID() string { return e.ID }

// WithID returns a copy of e carrying id.
func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}

// Dimension returns the grouping key for d.
// The buyer id serves as both tenant and actor.
func (e Event) Dimension(d query.Dimension) (string, bool) {
	switch d {
	case query.DimTenant, query.DimActor:
		return e.BuyerID, e.BuyerID != ""
	case query.DimEndpoint:
		return e.Endpoint, e.Endpoint != ""
	case query.DimService:
		return e.ServiceID, e.ServiceID != ""
	case query.DimStatus:
		return string(e.Status), e.Status != ""
	case query.DimCategory:
		return string(e.Category), e.Category != ""
	}
	return "", false
}
