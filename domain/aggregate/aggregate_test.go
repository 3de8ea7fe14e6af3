package aggregate_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
)

var (
	windowStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
)

func amount(v int64) *int64 { return &v }

func window() query.Filter {
	return query.Filter{From: windowStart, To: windowEnd}
}

// scenarioEvents builds 10 SUCCESS events (100..1000) and 2 PAYMENT_REQUIRED events for agent A.
func scenarioEvents() []usage.Event {
	var events []usage.Event
	for i := 1; i <= 10; i++ {
		events = append(events, usage.Event{
			ID:           fmt.Sprintf("s%02d", i),
			AgentID:      "A",
			Endpoint:     fmt.Sprintf("/api/%d", i%3),
			Status:       usage.StatusSuccess,
			AmountAtomic: amount(int64(i * 100)),
			CreatedAt:    windowStart.Add(time.Duration(i) * time.Hour),
		})
	}
	for i := 1; i <= 2; i++ {
		events = append(events, usage.Event{
			ID:        fmt.Sprintf("p%02d", i),
			AgentID:   "A",
			Status:    usage.StatusPaymentRequired,
			CreatedAt: windowStart.Add(time.Duration(i) * time.Minute),
		})
	}
	return events
}

func TestTotal_Scenario(t *testing.T) {
	f := window()
	f.ActorID = "A"

	got := aggregate.Total(scenarioEvents(), f)

	if got.Count != 12 {
		t.Errorf("Count = %d, want 12", got.Count)
	}
	if got.SuccessCount != 10 {
		t.Errorf("SuccessCount = %d, want 10", got.SuccessCount)
	}
	if got.AmountSum != 5500 {
		t.Errorf("AmountSum = %d, want 5500", got.AmountSum)
	}
	want := 10.0 / 12.0 * 100
	if math.Abs(got.SuccessRate-want) > 1e-9 {
		t.Errorf("SuccessRate = %f, want %f", got.SuccessRate, want)
	}
}

func TestTotal_Empty(t *testing.T) {
	got := aggregate.Total([]usage.Event(nil), window())

	if got.Count != 0 || got.AmountSum != 0 || got.SuccessRate != 0 {
		t.Errorf("Total(nil) = %+v, want zero value", got)
	}
}

func TestTotal_IgnoresNonSuccessAmounts(t *testing.T) {
	events := []usage.Event{
		{ID: "1", Status: usage.StatusSuccess, AmountAtomic: amount(50), CreatedAt: windowStart},
		{ID: "2", Status: usage.StatusPaymentRequired, AmountAtomic: amount(1000), CreatedAt: windowStart},
		{ID: "3", Status: usage.StatusSettleFailed, AmountAtomic: amount(700), CreatedAt: windowStart},
	}

	got := aggregate.Total(events, window())

	if got.AmountSum != 50 {
		t.Errorf("AmountSum = %d, want 50 (only SUCCESS amounts count)", got.AmountSum)
	}
}

func TestTotal_TimeRangeInclusive(t *testing.T) {
	events := []usage.Event{
		{ID: "start", Status: usage.StatusSuccess, AmountAtomic: amount(1), CreatedAt: windowStart},
		{ID: "end", Status: usage.StatusSuccess, AmountAtomic: amount(2), CreatedAt: windowEnd},
		{ID: "before", Status: usage.StatusSuccess, AmountAtomic: amount(4), CreatedAt: windowStart.Add(-time.Second)},
		{ID: "after", Status: usage.StatusSuccess, AmountAtomic: amount(8), CreatedAt: windowEnd.Add(time.Second)},
	}

	got := aggregate.Total(events, window())

	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if got.AmountSum != 3 {
		t.Errorf("AmountSum = %d, want 3", got.AmountSum)
	}
}

func TestGroupBy_PartitionsSuccessTotal(t *testing.T) {
	events := scenarioEvents()
	dims := []query.Dimension{query.DimActor, query.DimEndpoint, query.DimStatus, query.DimTenant}

	totals := aggregate.Total(events, window())
	for _, dim := range dims {
		t.Run(string(dim), func(t *testing.T) {
			groups := aggregate.GroupBy(events, dim, window(), aggregate.Unlimited)

			var sum int64
			for _, g := range groups {
				sum += g.AmountSum
			}
			if sum != totals.AmountSum {
				t.Errorf("sum of group amounts = %d, want %d", sum, totals.AmountSum)
			}
		})
	}
}

func TestGroupBy_SortedAndStable(t *testing.T) {
	events := []usage.Event{
		{ID: "1", Endpoint: "/b", Status: usage.StatusSuccess, AmountAtomic: amount(100), CreatedAt: windowStart},
		{ID: "2", Endpoint: "/a", Status: usage.StatusSuccess, AmountAtomic: amount(300), CreatedAt: windowStart},
		{ID: "3", Endpoint: "/c", Status: usage.StatusSuccess, AmountAtomic: amount(100), CreatedAt: windowStart},
		{ID: "4", Endpoint: "/b", Status: usage.StatusSuccess, AmountAtomic: amount(100), CreatedAt: windowStart},
		{ID: "5", Endpoint: "/d", Status: usage.StatusSuccess, AmountAtomic: amount(100), CreatedAt: windowStart},
	}

	groups := aggregate.GroupBy(events, query.DimEndpoint, window(), aggregate.Unlimited)

	wantKeys := []string{"/a", "/b", "/c", "/d"}
	if len(groups) != len(wantKeys) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(wantKeys))
	}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Errorf("groups[%d].Key = %s, want %s", i, groups[i].Key, key)
		}
	}
	for i := 1; i < len(groups); i++ {
		if groups[i].AmountSum > groups[i-1].AmountSum {
			t.Errorf("groups not sorted descending at %d", i)
		}
	}
	if groups[1].AvgCost != 100 {
		t.Errorf("/b AvgCost = %d, want 100", groups[1].AvgCost)
	}
	if groups[0].Exemplar.ID != "2" {
		t.Errorf("/a Exemplar.ID = %s, want 2", groups[0].Exemplar.ID)
	}
}

func TestGroupBy_TruncationKeepsPercent(t *testing.T) {
	events := scenarioEvents()

	full := aggregate.GroupBy(events, query.DimEndpoint, window(), aggregate.Unlimited)
	top := aggregate.GroupBy(events, query.DimEndpoint, window(), 1)

	if len(top) != 1 {
		t.Fatalf("len(top) = %d, want 1", len(top))
	}
	if top[0].Key != full[0].Key {
		t.Errorf("top[0].Key = %s, want %s", top[0].Key, full[0].Key)
	}
	if top[0].PercentOfTotal != full[0].PercentOfTotal {
		t.Errorf("PercentOfTotal changed after truncation: %f vs %f", top[0].PercentOfTotal, full[0].PercentOfTotal)
	}
	if top[0].PercentOfTotal >= 100 {
		t.Errorf("PercentOfTotal = %f, want < 100 (denominator is the full set)", top[0].PercentOfTotal)
	}
}

func TestGroupBy_AbsentKeyIsOwnGroup(t *testing.T) {
	events := []usage.Event{
		{ID: "1", Endpoint: "/x", Status: usage.StatusSuccess, AmountAtomic: amount(10), CreatedAt: windowStart},
		{ID: "2", Status: usage.StatusSuccess, AmountAtomic: amount(30), CreatedAt: windowStart},
		{ID: "3", Status: usage.StatusSuccess, CreatedAt: windowStart},
	}

	groups := aggregate.GroupBy(events, query.DimEndpoint, window(), aggregate.Unlimited)

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Present {
		t.Errorf("groups[0] should be the absent-key group")
	}
	if groups[0].Count != 2 || groups[0].AmountSum != 30 {
		t.Errorf("absent group = count %d sum %d, want count 2 sum 30", groups[0].Count, groups[0].AmountSum)
	}
	if groups[0].AvgCost != 15 {
		t.Errorf("absent group AvgCost = %d, want 15", groups[0].AvgCost)
	}
}

func TestGroupBy_Status(t *testing.T) {
	mk := func(id string, st spending.Status, amt int64) spending.Event {
		e := spending.Event{ID: id, BuyerID: "b", Status: st, CreatedAt: windowStart}
		if st == spending.StatusSuccess {
			e.AmountAtomic = amount(amt)
		}
		return e
	}
	events := []spending.Event{
		mk("1", spending.StatusFailed, 0),
		mk("2", spending.StatusSuccess, 10),
		mk("3", spending.StatusPending, 0),
		mk("4", spending.StatusSuccess, 20),
		mk("5", spending.StatusFailed, 0),
		mk("6", spending.StatusSuccess, 30),
	}

	groups := aggregate.GroupBy(events, query.DimStatus, window(), aggregate.Unlimited)

	want := []struct {
		key   string
		count int64
		sum   int64
	}{
		{"SUCCESS", 3, 60},
		{"FAILED", 2, 0},
		{"PENDING", 1, 0},
	}
	if len(groups) != len(want) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i].Key != w.key || groups[i].Count != w.count || groups[i].AmountSum != w.sum {
			t.Errorf("groups[%d] = {%s %d %d}, want {%s %d %d}",
				i, groups[i].Key, groups[i].Count, groups[i].AmountSum, w.key, w.count, w.sum)
		}
	}
	if groups[0].PercentOfTotal != 100 {
		t.Errorf("SUCCESS PercentOfTotal = %f, want 100", groups[0].PercentOfTotal)
	}
}

func TestGroupBy_PinnedStatus(t *testing.T) {
	events := scenarioEvents()
	f := window().WithStatus(string(usage.StatusPaymentRequired))

	groups := aggregate.GroupBy(events, query.DimActor, f, aggregate.Unlimited)

	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if groups[0].Count != 2 || groups[0].AmountSum != 0 || groups[0].PercentOfTotal != 0 {
		t.Errorf("group = %+v, want count 2 with zero amounts", groups[0])
	}
}

func TestGroupBy_Category(t *testing.T) {
	events := []spending.Event{
		{ID: "1", Category: spending.CategoryStorage, Status: spending.StatusSuccess, AmountAtomic: amount(5), CreatedAt: windowStart},
		{ID: "2", Category: spending.CategoryLanguageModel, Status: spending.StatusSuccess, AmountAtomic: amount(50), CreatedAt: windowStart},
		{ID: "3", Category: spending.CategoryStorage, Status: spending.StatusSuccess, AmountAtomic: amount(5), CreatedAt: windowStart},
		{ID: "4", Category: spending.CategoryLanguageModel, Status: spending.StatusRefunded, AmountAtomic: amount(50), CreatedAt: windowStart},
	}

	groups := aggregate.GroupBy(events, query.DimCategory, window(), aggregate.Unlimited)

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Key != string(spending.CategoryLanguageModel) || groups[0].AmountSum != 50 {
		t.Errorf("groups[0] = %s/%d, want AI_LANGUAGE_MODEL/50", groups[0].Key, groups[0].AmountSum)
	}
	if groups[1].AmountSum != 10 || groups[1].Count != 2 {
		t.Errorf("groups[1] = count %d sum %d, want count 2 sum 10", groups[1].Count, groups[1].AmountSum)
	}
}

func TestDaily(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	events := []usage.Event{
		{ID: "1", Status: usage.StatusSuccess, AmountAtomic: amount(10), CreatedAt: day(5, 10)},
		{ID: "2", Status: usage.StatusSuccess, AmountAtomic: amount(20), CreatedAt: day(2, 23)},
		{ID: "3", Status: usage.StatusPaymentRequired, AmountAtomic: amount(99), CreatedAt: day(5, 1)},
		{ID: "4", Status: usage.StatusSuccess, AmountAtomic: amount(5), CreatedAt: day(2, 1)},
	}

	buckets := aggregate.Daily(events, window(), "", time.UTC)

	want := []aggregate.DateBucket{
		{Date: "2024-03-02", Count: 2, AmountSum: 25},
		{Date: "2024-03-05", Count: 2, AmountSum: 10},
	}
	if len(buckets) != len(want) {
		t.Fatalf("len(buckets) = %d, want %d", len(buckets), len(want))
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Errorf("buckets[%d] = %+v, want %+v", i, buckets[i], want[i])
		}
	}

	onlySuccess := aggregate.Daily(events, window(), string(usage.StatusSuccess), time.UTC)
	if onlySuccess[1].Count != 1 {
		t.Errorf("filtered 2024-03-05 Count = %d, want 1", onlySuccess[1].Count)
	}
}

func TestDaily_UsesQueryLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	events := []usage.Event{
		// 2024-03-02 20:00 UTC is 2024-03-03 05:00 in JST
		{ID: "1", Status: usage.StatusSuccess, AmountAtomic: amount(1), CreatedAt: time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)},
		{ID: "2", Status: usage.StatusSuccess, AmountAtomic: amount(1), CreatedAt: time.Date(2024, 3, 3, 1, 0, 0, 0, time.UTC)},
	}

	utc := aggregate.Daily(events, window(), "", time.UTC)
	jst := aggregate.Daily(events, window(), "", tokyo)

	if len(utc) != 2 {
		t.Errorf("UTC buckets = %d, want 2", len(utc))
	}
	if len(jst) != 1 || jst[0].Date != "2024-03-03" {
		t.Errorf("JST buckets = %+v, want one bucket on 2024-03-03", jst)
	}
}

func TestRecent_SortsByCreatedAt(t *testing.T) {
	events := []usage.Event{
		{ID: "old", AgentID: "A", Status: usage.StatusSuccess, CreatedAt: windowStart},
		{ID: "new", AgentID: "A", Status: usage.StatusSuccess, CreatedAt: windowStart.Add(2 * time.Hour)},
		{ID: "other", AgentID: "B", Status: usage.StatusSuccess, CreatedAt: windowStart.Add(3 * time.Hour)},
		{ID: "mid", AgentID: "A", Status: usage.StatusSuccess, CreatedAt: windowStart.Add(time.Hour)},
	}
	f := query.Filter{Owner: "A", From: query.AllTimeFrom, To: query.AllTimeTo}

	got := aggregate.Recent(events, f, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid" {
		t.Errorf("Recent = [%s %s], want [new mid]", got[0].ID, got[1].ID)
	}
	if events[0].ID != "old" {
		t.Errorf("input slice was reordered")
	}
}

func TestPaginate(t *testing.T) {
	var events []usage.Event
	for i := 0; i < 7; i++ {
		events = append(events, usage.Event{
			ID:        fmt.Sprintf("e%d", i),
			Status:    usage.StatusSuccess,
			CreatedAt: windowStart.Add(time.Duration(i) * time.Minute),
		})
	}
	f := window()
	f.Page, f.Size = 1, 3

	page, total := aggregate.Paginate(events, f)

	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(page) != 3 || page[0].ID != "e3" {
		t.Errorf("page = %v, want 3 events starting at e3", page)
	}

	f.Page = 5
	page, _ = aggregate.Paginate(events, f)
	if len(page) != 0 {
		t.Errorf("out of range page len = %d, want 0", len(page))
	}
}

func TestRatioAndPercent(t *testing.T) {
	if got := aggregate.Ratio(10, 0); got != 0 {
		t.Errorf("Ratio(10, 0) = %d, want 0", got)
	}
	if got := aggregate.Ratio(10, 3); got != 3 {
		t.Errorf("Ratio(10, 3) = %d, want 3", got)
	}
	if got := aggregate.Percent(1, 0); got != 0 {
		t.Errorf("Percent(1, 0) = %f, want 0", got)
	}
	if got := aggregate.Round2(aggregate.Percent(10, 12)); got != 83.33 {
		t.Errorf("Round2(Percent(10, 12)) = %f, want 83.33", got)
	}
}

func TestNewOverview(t *testing.T) {
	totals := aggregate.Total(scenarioEvents(), window())

	o := aggregate.NewOverview(totals, windowStart, windowEnd)

	if o.AvgCost != 550 {
		t.Errorf("AvgCost = %d, want 550", o.AvgCost)
	}
	if !o.From.Equal(windowStart) || !o.To.Equal(windowEnd) {
		t.Errorf("window not echoed: %v - %v", o.From, o.To)
	}

	empty := aggregate.NewOverview(aggregate.Totals{}, windowStart, windowEnd)
	if empty.AvgCost != 0 {
		t.Errorf("empty AvgCost = %d, want 0", empty.AvgCost)
	}
}
