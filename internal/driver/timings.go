package driver

import (
	"encoding/json"

	"gul/internal/diag"
	"gul/internal/observ"
	"gul/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic attaches a timing report to the bag as an info
// diagnostic with a JSON note, so every output format can carry it.
func appendTimingDiagnostic(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil || len(report.Phases) == 0 {
		return
	}
	payload := timingPayload{
		Kind:    "file",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "pipeline timings")
	d.WithNote(source.Span{}, string(data))
	bag.Add(d)
}
