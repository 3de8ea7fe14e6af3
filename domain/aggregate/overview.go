package aggregate

import "time"

// Overview is the headline summary shown at the top of a dashboard.
type Overview struct {
	Totals
	// AvgCost is AmountSum divided by SuccessCount.
	AvgCost int64     `json:"avgCost"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// NewOverview combines totals with the window they were computed over.
func NewOverview(t Totals, from, to time.Time) Overview {
	return Overview{
		Totals:  t,
		AvgCost: Ratio(t.AmountSum, t.SuccessCount),
		From:    from,
		To:      to,
	}
}
