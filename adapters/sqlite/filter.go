package sqlite

import (
	"strings"

	"github.com/x402dash/x402dash/domain/query"
)

// columns maps filter keys to a table's columns.
// An empty column means the table has no such field; filtering on it matches nothing.
type columns struct {
	tenant   string
	actor    string
	service  string
	category string
}

var (
	usageColumns    = columns{tenant: "tenant_id", actor: "agent_id"}
	spendingColumns = columns{tenant: "buyer_id", actor: "buyer_id", service: "service_id", category: "category"}
)

// where translates f into a WHERE clause and its arguments.
// It mirrors query.Filter.Matches: absent text fields are stored as '' and
// never equal a non-empty filter value.
func where(f query.Filter, cols columns) (string, []any) {
	clauses := []string{"created_at >= ?", "created_at <= ?"}
	args := []any{nanos(f.From), nanos(f.To)}

	eq := func(col, v string) {
		if v == "" {
			return
		}
		if col == "" {
			clauses = append(clauses, "0")
			return
		}
		clauses = append(clauses, col+" = ?")
		args = append(args, v)
	}

	eq("status", f.Status)
	eq(cols.tenant, f.TenantID)
	eq(cols.actor, f.ActorID)
	eq(cols.service, f.ServiceID)
	eq(cols.category, f.Category)

	if f.Owner != "" {
		if cols.tenant == cols.actor {
			clauses = append(clauses, cols.tenant+" = ?")
			args = append(args, f.Owner)
		} else {
			clauses = append(clauses, "("+cols.tenant+" = ? OR "+cols.actor+" = ?)")
			args = append(args, f.Owner, f.Owner)
		}
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}
