package lexer

import "gul/internal/diag"

// ReporterAdapter lets callers hand a Bag where a Reporter is expected.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag}
}
