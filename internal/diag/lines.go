package diag

import (
	"cmp"
	"slices"
	"strings"

	"gul/internal/source"
)

// Line is a diagnostic or one of its notes, flattened for one-line output.
type Line struct {
	Label   string // error, warning, info or note
	Code    Code
	Span    source.Span
	Message string
}

// Lines flattens diags into source order. Notes become their own lines
// carrying the parent code when withNotes is set. Ties keep bag order.
func Lines(diags []*Diagnostic, withNotes bool) []Line {
	out := make([]Line, 0, len(diags))
	for _, d := range diags {
		out = append(out, Line{
			Label:   strings.ToLower(d.Severity.String()),
			Code:    d.Code,
			Span:    d.Primary,
			Message: oneLine(d.Message),
		})
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			out = append(out, Line{Label: "note", Code: d.Code, Span: n.Span, Message: oneLine(n.Msg)})
		}
	}
	slices.SortStableFunc(out, func(a, b Line) int {
		return cmp.Or(
			cmp.Compare(a.Span.File, b.Span.File),
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.Code, b.Code),
		)
	})
	return out
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
