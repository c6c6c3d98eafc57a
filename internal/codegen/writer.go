package codegen

// Writer accumulates generated source and tracks the indentation level so
// that every emitted line starts at IndentWidth columns per nesting level.
type Writer struct {
	buf         []byte
	indentWidth int
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer with the given indentation width.
func NewWriter(indentWidth int) *Writer {
	if indentWidth <= 0 {
		indentWidth = 4
	}
	return &Writer{
		buf:         make([]byte, 0, 4096),
		indentWidth: indentWidth,
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel * w.indentWidth {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.WriteString(s)
	w.Newline()
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// BlankLine separates top-level items by exactly one empty line.
func (w *Writer) BlankLine() {
	n := len(w.buf)
	if n == 0 || (n >= 2 && w.buf[n-1] == '\n' && w.buf[n-2] == '\n') {
		return
	}
	if w.buf[n-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// Verbatim writes pre-formatted lines, re-indenting each to the current
// level while keeping their relative indentation.
func (w *Writer) Verbatim(lines []string) {
	for _, l := range lines {
		if l == "" {
			w.Newline()
			continue
		}
		w.Line(l)
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Level reports the current nesting depth.
func (w *Writer) Level() int {
	return w.indentLevel
}
