package spending

import (
	"testing"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
)

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses {
		got, err := ParseStatus(string(st))
		if err != nil || got != st {
			t.Errorf("ParseStatus(%s) = %s, %v", st, got, err)
		}
	}
	if got, err := ParseStatus("pending"); err != nil || got != StatusPending {
		t.Errorf("ParseStatus(pending) = %s, %v", got, err)
	}
	if _, err := ParseStatus("SETTLED"); !errs.IsValidation(err) {
		t.Errorf("ParseStatus(SETTLED) error = %v, want validation error", err)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"AI_LANGUAGE_MODEL", CategoryLanguageModel, false},
		{"storage", CategoryStorage, false},
		{"blockchain", CategoryBlockchain, false},
		{"GAMES", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEvent_Validate(t *testing.T) {
	neg := int64(-5)
	tests := []struct {
		name  string
		event Event
		field string
	}{
		{"valid", Event{Status: StatusSuccess, Category: CategoryCompute}, ""},
		{"missing status", Event{}, "status"},
		{"bad category", Event{Status: StatusSuccess, Category: "GAMES"}, "category"},
		{"negative amount", Event{Status: StatusSuccess, AmountAtomic: &neg}, "amountAtomic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			ve, ok := errs.AsValidation(err)
			if !ok || ve.Field != tt.field {
				t.Errorf("Validate() = %v, want validation error on %s", err, tt.field)
			}
		})
	}
}

func TestEvent_Dimension(t *testing.T) {
	e := Event{
		BuyerID:   "buyer-1",
		ServiceID: "openai",
		Endpoint:  "/v1/chat",
		Category:  CategoryLanguageModel,
		Status:    StatusRefunded,
	}

	tests := []struct {
		dim  query.Dimension
		want string
	}{
		{query.DimTenant, "buyer-1"},
		{query.DimActor, "buyer-1"},
		{query.DimService, "openai"},
		{query.DimEndpoint, "/v1/chat"},
		{query.DimCategory, "AI_LANGUAGE_MODEL"},
		{query.DimStatus, "REFUNDED"},
	}
	for _, tt := range tests {
		got, ok := e.Dimension(tt.dim)
		if !ok || got != tt.want {
			t.Errorf("Dimension(%s) = (%q, %v), want %q", tt.dim, got, ok, tt.want)
		}
	}

	if e.Succeeded() {
		t.Error("REFUNDED should not count as succeeded")
	}
	if _, ok := (Event{}).Dimension(query.DimService); ok {
		t.Error("empty service id should be absent")
	}
}
