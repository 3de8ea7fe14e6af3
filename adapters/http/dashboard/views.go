package dashboard

import (
	"time"

	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/spending"
)

// Percentages leave the engine unrounded and are rounded to two decimals here.

// OverviewView is the headline summary of a dashboard.
type OverviewView struct {
	Count        int64     `json:"count" example:"12"`
	SuccessCount int64     `json:"successCount" example:"10"`
	AmountSum    int64     `json:"amountSum" example:"5500"`
	SuccessRate  float64   `json:"successRate" example:"83.33"`
	AvgCost      int64     `json:"avgCost" example:"550"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

func newOverviewView(o aggregate.Overview) OverviewView {
	return OverviewView{
		Count:        o.Count,
		SuccessCount: o.SuccessCount,
		AmountSum:    o.AmountSum,
		SuccessRate:  aggregate.Round2(o.SuccessRate),
		AvgCost:      o.AvgCost,
		From:         o.From,
		To:           o.To,
	}
}

// GroupView is one ranked partition.
// Present is false for the group of records that have no value for the key.
type GroupView struct {
	Key            string  `json:"key" example:"claude-agent-001"`
	Present        bool    `json:"present"`
	Count          int64   `json:"count"`
	AmountSum      int64   `json:"amountSum"`
	AvgCost        int64   `json:"avgCost"`
	PercentOfTotal float64 `json:"percentOfTotal"`
}

func newGroupViews[R aggregate.Record](groups []aggregate.Group[R]) []GroupView {
	out := make([]GroupView, len(groups))
	for i, g := range groups {
		out[i] = GroupView{
			Key:            g.Key,
			Present:        g.Present,
			Count:          g.Count,
			AmountSum:      g.AmountSum,
			AvgCost:        g.AvgCost,
			PercentOfTotal: aggregate.Round2(g.PercentOfTotal),
		}
	}
	return out
}

// ServiceView is a buyer's spending on one service.
type ServiceView struct {
	GroupView
	ServiceName string            `json:"serviceName,omitempty"`
	Category    spending.Category `json:"category,omitempty"`
}

func newServiceViews(groups []aggregate.Group[spending.Event]) []ServiceView {
	base := newGroupViews(groups)
	out := make([]ServiceView, len(groups))
	for i, g := range groups {
		out[i] = ServiceView{
			GroupView:   base[i],
			ServiceName: g.Exemplar.ServiceName,
			Category:    g.Exemplar.Category,
		}
	}
	return out
}
