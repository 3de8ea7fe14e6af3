package query_test

import (
	"testing"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
)

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	gotFrom, gotTo := query.LastDays(now, 7, time.UTC)

	wantFrom := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	if !gotFrom.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", gotFrom, wantFrom)
	}
	if !gotTo.Equal(wantTo) {
		t.Errorf("to = %v, want %v", gotTo, wantTo)
	}
}

func TestParseBounds(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := query.ParseFrom("from", "", def, time.UTC)
	if err != nil || !got.Equal(def) {
		t.Errorf("ParseFrom(empty) = %v, %v; want default", got, err)
	}

	got, err = query.ParseFrom("from", "2024-02-03", def, time.UTC)
	if err != nil || !got.Equal(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseFrom(date) = %v, %v", got, err)
	}

	got, err = query.ParseTo("to", "2024-02-03", def, time.UTC)
	if err != nil || !got.Equal(time.Date(2024, 2, 3, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("ParseTo(date) = %v, %v", got, err)
	}

	got, err = query.ParseTo("to", "2024-02-03T10:00:00Z", def, time.UTC)
	if err != nil || !got.Equal(time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseTo(rfc3339) = %v, %v", got, err)
	}

	_, err = query.ParseFrom("startDate", "yesterday", def, time.UTC)
	ve, ok := errs.AsValidation(err)
	if !ok || ve.Field != "startDate" {
		t.Errorf("ParseFrom(bad) error = %v, want validation error on startDate", err)
	}
}

func TestAllTime_FitsUnixNanos(t *testing.T) {
	if got := query.AllTimeTo.UnixNano(); got <= 0 {
		t.Errorf("AllTimeTo.UnixNano() = %d, want positive", got)
	}
	if got := query.AllTimeFrom.UnixNano(); got != 0 {
		t.Errorf("AllTimeFrom.UnixNano() = %d, want 0", got)
	}
	now := time.Now()
	if now.Before(query.AllTimeFrom) || now.After(query.AllTimeTo) {
		t.Errorf("now %v outside [%v, %v]", now, query.AllTimeFrom, query.AllTimeTo)
	}
}
