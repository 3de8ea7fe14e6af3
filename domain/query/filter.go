// Package query provides the filter shared by every read path.
// All functions are pure - no side effects.
package query

import (
	"time"

	"github.com/x402dash/x402dash/domain/errs"
)

// Dimension names a record field usable as a filter or grouping key.
type Dimension string

const (
	DimTenant   Dimension = "tenant"
	DimActor    Dimension = "actor"
	DimEndpoint Dimension = "endpoint"
	DimService  Dimension = "service"
	DimStatus   Dimension = "status"
	DimCategory Dimension = "category"
)

// ParseDimension converts a grouping key name into a Dimension.
// "agent" and "buyer" are accepted as aliases for the actor dimension.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "tenant":
		return DimTenant, nil
	case "actor", "agent", "buyer":
		return DimActor, nil
	case "endpoint":
		return DimEndpoint, nil
	case "service":
		return DimService, nil
	case "status":
		return DimStatus, nil
	case "category":
		return DimCategory, nil
	}
	return "", errs.Invalid("dimension", s, "must be one of tenant, actor, endpoint, service, status, category")
}

// Subject is anything a Filter can be evaluated against.
type Subject interface {
	Timestamp() time.Time
	StatusName() string
	// Dimension returns the record's value for d and whether it is present.
	Dimension(d Dimension) (string, bool)
}

// Filter selects records by equality on optional keys and an inclusive time range.
// Empty string fields match every value.
type Filter struct {
	TenantID  string
	ActorID   string
	ServiceID string
	// Owner matches records whose tenant or actor equals it.
	Owner    string
	Status   string
	Category string

	// From and To bound CreatedAt inclusively. Both are required.
	From time.Time
	To   time.Time

	// Page is zero-based; Size 0 means no paging.
	Page int
	Size int
}

// Validate checks that the filter is usable by a read path.
func (f Filter) Validate() error {
	if f.From.IsZero() {
		return errs.Invalid("from", "", "time range start is required")
	}
	if f.To.IsZero() {
		return errs.Invalid("to", "", "time range end is required")
	}
	if f.From.After(f.To) {
		return errs.Invalid("from", f.From.Format(time.RFC3339), "must not be after to")
	}
	if f.Page < 0 {
		return errs.Invalid("page", "", "must not be negative")
	}
	if f.Size < 0 {
		return errs.Invalid("size", "", "must not be negative")
	}
	return nil
}

// Matches reports whether s satisfies every constraint of the filter.
func (f Filter) Matches(s Subject) bool {
	ts := s.Timestamp()
	if ts.Before(f.From) || ts.After(f.To) {
		return false
	}
	if f.Status != "" && s.StatusName() != f.Status {
		return false
	}
	if !matchKey(s, DimTenant, f.TenantID) {
		return false
	}
	if !matchKey(s, DimActor, f.ActorID) {
		return false
	}
	if !matchKey(s, DimService, f.ServiceID) {
		return false
	}
	if !matchKey(s, DimCategory, f.Category) {
		return false
	}
	if f.Owner != "" {
		tenant, _ := s.Dimension(DimTenant)
		actor, _ := s.Dimension(DimActor)
		if tenant != f.Owner && actor != f.Owner {
			return false
		}
	}
	return true
}

func matchKey(s Subject, d Dimension, want string) bool {
	if want == "" {
		return true
	}
	got, ok := s.Dimension(d)
	return ok && got == want
}

// WithStatus returns a copy of f pinned to status.
func (f Filter) WithStatus(status string) Filter {
	f.Status = status
	return f
}

// Unpaged returns a copy of f with paging cleared.
func (f Filter) Unpaged() Filter {
	f.Page, f.Size = 0, 0
	return f
}
