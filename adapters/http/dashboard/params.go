package dashboard

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
)

// params reads dashboard query parameters. The first failure is kept and
// later reads become no-ops, so a handler checks err once at the end.
type params struct {
	q   url.Values
	loc *time.Location
	now time.Time
	err error
}

func newParams(r *http.Request, loc *time.Location, now time.Time) *params {
	return &params{q: r.URL.Query(), loc: loc, now: now}
}

func (p *params) str(name string) string {
	return p.q.Get(name)
}

// window reads from/to, defaulting to the last days days through the end of today.
func (p *params) window(days int) (from, to time.Time) {
	defFrom, defTo := query.LastDays(p.now, days, p.loc)
	if p.err != nil {
		return defFrom, defTo
	}
	if from, p.err = query.ParseFrom("from", p.q.Get("from"), defFrom, p.loc); p.err != nil {
		return defFrom, defTo
	}
	if to, p.err = query.ParseTo("to", p.q.Get("to"), defTo, p.loc); p.err != nil {
		return defFrom, defTo
	}
	return from, to
}

// integer reads name as an int within [min, max], def when absent.
func (p *params) integer(name string, def, min, max int) int {
	v := p.q.Get(name)
	if p.err != nil || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		p.err = errs.Invalid(name, v, fmt.Sprintf("must be an integer between %d and %d", min, max))
		return def
	}
	return n
}

func (p *params) usageStatus() usage.Status {
	v := p.q.Get("status")
	if p.err != nil || v == "" {
		return ""
	}
	st, err := usage.ParseStatus(v)
	p.err = err
	return st
}

func (p *params) spendingStatus() spending.Status {
	v := p.q.Get("status")
	if p.err != nil || v == "" {
		return ""
	}
	st, err := spending.ParseStatus(v)
	p.err = err
	return st
}

func (p *params) category() spending.Category {
	v := p.q.Get("category")
	if p.err != nil || v == "" {
		return ""
	}
	c, err := spending.ParseCategory(v)
	p.err = err
	return c
}
