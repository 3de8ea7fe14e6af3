// Package aggregate computes dashboard metrics over event records.
// It is generic over the record shape so seller usage events and buyer
// spending events share one implementation.
// All functions are pure - no side effects, no caching.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/x402dash/x402dash/domain/query"
)

// Record is the view of an event the engine needs.
type Record interface {
	query.Subject
	RecordID() string
	// Succeeded gates monetary sums: only successful records contribute amounts.
	Succeeded() bool
	// Amount is the atomic amount, zero when absent.
	Amount() int64
}

// Unlimited disables truncation in GroupBy and Recent.
const Unlimited = 0

// Totals summarizes a filtered record set.
type Totals struct {
	Count        int64   `json:"count"`
	SuccessCount int64   `json:"successCount"`
	AmountSum    int64   `json:"amountSum"`
	SuccessRate  float64 `json:"successRate"`
}

// Group is one partition produced by GroupBy.
type Group[R Record] struct {
	Key            string  `json:"key"`
	Present        bool    `json:"present"`
	Count          int64   `json:"count"`
	AmountSum      int64   `json:"amountSum"`
	AvgCost        int64   `json:"avgCost"`
	PercentOfTotal float64 `json:"percentOfTotal"`

	// Exemplar is the first record seen for the group.
	Exemplar R `json:"-"`
}

// DateBucket holds one calendar day of activity.
type DateBucket struct {
	Date      string `json:"date"` // YYYY-MM-DD in the query's location
	Count     int64  `json:"count"`
	AmountSum int64  `json:"amountSum"`
}

// Select returns the records matching f, in input order.
// Paging fields of f are ignored.
func Select[R Record](events []R, f query.Filter) []R {
	out := make([]R, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Total computes count, success count, SUCCESS-gated amount and success rate.
func Total[R Record](events []R, f query.Filter) Totals {
	var t Totals
	for _, e := range events {
		if !f.Matches(e) {
			continue
		}
		t.Count++
		if e.Succeeded() {
			t.SuccessCount++
			t.AmountSum += e.Amount()
		}
	}
	t.SuccessRate = Percent(t.SuccessCount, t.Count)
	return t
}

// GroupBy partitions matching records by dim and ranks the groups by amount.
//
// For the status dimension every matching record is partitioned. For other
// dimensions only successful records are partitioned, unless f pins a status,
// in which case records of that status are. Groups are sorted descending by
// AmountSum with ties kept in first-seen order. PercentOfTotal is computed
// against the whole partitioned set before truncation to limit.
func GroupBy[R Record](events []R, dim query.Dimension, f query.Filter, limit int) []Group[R] {
	gateSuccess := dim != query.DimStatus && f.Status == ""

	type groupKey struct {
		key     string
		present bool
	}
	index := make(map[groupKey]int)
	var groups []Group[R]
	var total int64

	for _, e := range events {
		if !f.Matches(e) {
			continue
		}
		if gateSuccess && !e.Succeeded() {
			continue
		}
		k, ok := e.Dimension(dim)
		gk := groupKey{key: k, present: ok}
		i, seen := index[gk]
		if !seen {
			i = len(groups)
			index[gk] = i
			groups = append(groups, Group[R]{Key: k, Present: ok, Exemplar: e})
		}
		groups[i].Count++
		if e.Succeeded() {
			groups[i].AmountSum += e.Amount()
			total += e.Amount()
		}
	}

	for i := range groups {
		groups[i].AvgCost = Ratio(groups[i].AmountSum, groups[i].Count)
		groups[i].PercentOfTotal = Percent(groups[i].AmountSum, total)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].AmountSum > groups[b].AmountSum
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// Daily buckets matching records by calendar date in loc.
// When status is non-empty only records with that status are counted.
// Buckets are sparse and sorted ascending by date.
func Daily[R Record](events []R, f query.Filter, status string, loc *time.Location) []DateBucket {
	if loc == nil {
		loc = time.UTC
	}
	index := make(map[string]int)
	var buckets []DateBucket

	for _, e := range events {
		if !f.Matches(e) {
			continue
		}
		if status != "" && e.StatusName() != status {
			continue
		}
		day := e.Timestamp().In(loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(buckets)
			index[day] = i
			buckets = append(buckets, DateBucket{Date: day})
		}
		buckets[i].Count++
		if e.Succeeded() {
			buckets[i].AmountSum += e.Amount()
		}
	}

	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Date < buckets[b].Date
	})
	return buckets
}

// Newest sorts records descending by timestamp; equal timestamps order by id.
// The input slice is not modified.
func Newest[R Record](events []R) []R {
	out := make([]R, len(events))
	copy(out, events)
	sort.SliceStable(out, func(a, b int) bool {
		ta, tb := out[a].Timestamp(), out[b].Timestamp()
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return out[a].RecordID() < out[b].RecordID()
	})
	return out
}

// Recent returns up to limit matching records, newest first.
func Recent[R Record](events []R, f query.Filter, limit int) []R {
	out := Newest(Select(events, f))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Paginate returns the page of matching records described by f.Page and
// f.Size, newest first, together with the total number of matches.
func Paginate[R Record](events []R, f query.Filter) ([]R, int64) {
	all := Newest(Select(events, f))
	total := int64(len(all))
	if f.Size <= 0 {
		return all, total
	}
	start := f.Page * f.Size
	if start >= len(all) {
		return []R{}, total
	}
	end := start + f.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

// Ratio returns num/den truncated toward zero, or 0 when den is 0.
func Ratio(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Percent returns part*100/whole, or 0 when whole is 0.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// Round2 rounds x half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
