// Package usage provides the seller-side usage event type.
// An Event records one metered request that a seller served (or refused).
// All functions are pure - no side effects.
package usage

import (
	"strings"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
)

// Status is the outcome recorded for a usage event.
type Status string

const (
	StatusSuccess         Status = "SUCCESS"          // Payment completed and resource served
	StatusPaymentRequired Status = "PAYMENT_REQUIRED" // 402 issued
	StatusVerifyFailed    Status = "VERIFY_FAILED"    // Payment verification failed
	StatusSettleFailed    Status = "SETTLE_FAILED"    // Settlement failed
	StatusUnknownError    Status = "UNKNOWN_ERROR"
)

// Statuses lists every valid Status in declaration order.
var Statuses = []Status{
	StatusSuccess,
	StatusPaymentRequired,
	StatusVerifyFailed,
	StatusSettleFailed,
	StatusUnknownError,
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
// Unknown values are rejected, never defaulted.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errs.Invalid("status", s, "unknown usage status")
	}
	return st, nil
}

// AgentType identifies the kind of AI agent making a request.
type AgentType string

const (
	AgentClaude  AgentType = "CLAUDE"
	AgentGPT     AgentType = "GPT"
	AgentGemini  AgentType = "GEMINI"
	AgentCustom  AgentType = "CUSTOM"
	AgentUnknown AgentType = "UNKNOWN"
)

// AgentTypes lists every valid AgentType.
var AgentTypes = []AgentType{AgentClaude, AgentGPT, AgentGemini, AgentCustom, AgentUnknown}

// Valid reports whether a is a known agent type.
func (a AgentType) Valid() bool {
	for _, v := range AgentTypes {
		if a == v {
			return true
		}
	}
	return false
}

// ParseAgentType converts free text into an AgentType.
func ParseAgentType(s string) (AgentType, error) {
	a := AgentType(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", errs.Invalid("agentType", s, "unknown agent type")
	}
	return a, nil
}

// DefaultMethod is recorded when the caller supplies no method.
const DefaultMethod = "METHOD_CALL"

// Event represents a single usage event (immutable once stored).
type Event struct {
	ID string `json:"id"`

	TenantID  string    `json:"tenantId,omitempty"`
	AgentID   string    `json:"agentId,omitempty"`
	AgentType AgentType `json:"agentType,omitempty"`

	Method     string `json:"method,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	BillingKey string `json:"billingKey,omitempty"`

	Network      string `json:"network,omitempty"` // CAIP-2, e.g. eip155:84532
	Asset        string `json:"asset,omitempty"`
	AmountAtomic *int64 `json:"amountAtomic,omitempty"` // nil means no payment
	TxHash       string `json:"txHash,omitempty"`

	Status Status `json:"status"`

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
		return errs.Invalid("status", string(e.Status), "unknown usage status")
	}
	if e.AgentType != "" && !e.AgentType.Valid() {
		return errs.Invalid("agentType", string(e.AgentType), "unknown agent type")
	}
	if e.AmountAtomic != nil && *e.AmountAtomic < 0 {
		return errs.Invalid("amountAtomic", "", "must not be negative")
	}
	if e.LatencyMs != nil && *e.LatencyMs < 0 {
		return errs.Invalid("latencyMs", "", "must not be negative")
	}
	return nil
}

// Timestamp returns the creation instant used for range filtering and bucketing.
func (e Event) Timestamp() time.Time { return e.CreatedAt }

// StatusName returns the canonical status name.
func (e Event) StatusName() string { return string(e.Status) }

// Succeeded reports whether the event counts toward monetary sums.
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
// Usage events have no service or category; those dimensions are always absent.
func (e Event) Dimension(d query.Dimension) (string, bool) {
	switch d {
	case query.DimTenant:
		return e.TenantID, e.TenantID != ""
	case query.DimActor:
		return e.AgentID, e.AgentID != ""
	case query.DimEndpoint:
		return e.Endpoint, e.Endpoint != ""
	case query.DimStatus:
		return string(e.Status), e.Status != ""
	}
	return "", false
}
