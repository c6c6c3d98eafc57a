package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"gul/internal/diag"
	"gul/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fixAdd, fixDel *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fixAdd: color.New(color.FgGreen),
		fixDel: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.fixAdd, p.fixDel} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans. The bag is expected to be sorted.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with the span underlined as ^~~~ and, when
// enabled, its notes and fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	var b strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeHeader(&b, d, fs, opts, pal)
		if locatable(d, fs) {
			writeSnippet(&b, d.Primary, fs, opts, pal)
		}
		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, note := range d.Notes {
				b.WriteString("  ")
				b.WriteString(pal.note.Sprint("note"))
				b.WriteString(": ")
				if f := fileOf(fs, note.Span); f != nil && !note.Span.Empty() {
					pos := fs.Position(note.Span)
					fmt.Fprintf(&b, "%s:%d:%d: ", formatPath(f, fs, opts.PathMode), pos.Line, pos.Col)
				}
				b.WriteString(note.Msg)
				b.WriteByte('\n')
			}
		}
		if opts.ShowFixes {
			writeFixes(&b, d, fs, opts, pal)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeader(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	if locatable(d, fs) {
		f := fileOf(fs, d.Primary)
		pos := fs.Position(d.Primary)
		fmt.Fprintf(b, "%s:%d:%d: ", formatPath(f, fs, opts.PathMode), pos.Line, pos.Col)
	}
	b.WriteString(pal.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String())))
	b.WriteByte(' ')
	b.WriteString(pal.code.Sprint(d.Code.ID()))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')
}

// writeSnippet prints the context lines, the primary line and a caret line
// whose offset and length are measured in terminal cells.
func writeSnippet(b *strings.Builder, span source.Span, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fileOf(fs, span)
	start, end := fs.Resolve(span)
	first := start.Line
	if back, err := safecast.Conv[uint32](opts.Context); err == nil && back > 0 {
		if back >= first {
			first = 1
		} else {
			first -= back
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		line := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(b, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}
	pad := caretPadding(line[:col])
	width := max(runewidth.StringWidth(line[col:stop]), 1)
	if opts.Width > 0 {
		limit := int(opts.Width)
		if runewidth.StringWidth(pad) >= limit {
			return
		}
		width = min(width, limit-runewidth.StringWidth(pad))
	}
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(b, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pad, pal.caret.Sprint(marks))
}

// caretPadding keeps tabs so the caret lines up with tab-indented source.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func writeFixes(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	for _, fix := range d.Fixes {
		b.WriteString("  ")
		b.WriteString(pal.fixAdd.Sprint("fix"))
		b.WriteString(": ")
		b.WriteString(fix.Title)
		b.WriteByte('\n')
		if !opts.ShowPreview {
			continue
		}
		for _, edit := range fix.Edits {
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			for _, line := range preview.before {
				b.WriteString("    ")
				b.WriteString(pal.fixDel.Sprint("- " + line))
				b.WriteByte('\n')
			}
			for _, line := range preview.after {
				b.WriteString("    ")
				b.WriteString(pal.fixAdd.Sprint("+ " + line))
				b.WriteByte('\n')
			}
		}
	}
}

// Short renders one line per diagnostic, in source order, without
// excerpts. withNotes adds each note as its own line.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode, withNotes bool) error {
	if bag == nil {
		return nil
	}
	var b strings.Builder
	for _, l := range diag.Lines(bag.Items(), withNotes) {
		if locatableAt(l.Code, l.Span, fs) {
			pos := fs.Position(l.Span)
			fmt.Fprintf(&b, "%s:%d:%d: ", formatPath(fileOf(fs, l.Span), fs, mode), pos.Line, pos.Col)
		}
		fmt.Fprintf(&b, "%s %s: %s\n", l.Label, l.Code.ID(), l.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
