package diag

import (
	"fmt"
	"sort"
)

// Bag is the ordered diagnostic list owned by one compilation unit.
type Bag struct {
	items []*Diagnostic
	max   int
	// dropped counts errors rejected by the limit; they still count for
	// HasErrors so a truncated bag never looks clean.
	dropped int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends d and reports false when the limit is reached.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		if d.Severity == SevError {
			b.dropped++
		}
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

func (b *Bag) HasErrors() bool {
	return b.dropped > 0 || b.count(SevError) > 0
}

// Dropped is the number of errors rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasWarnings reports warnings or anything more severe.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) ErrorCount() int {
	return b.count(SevError)
}

func (b *Bag) WarningCount() int {
	return b.count(SevWarning)
}

func (b *Bag) count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge appends every diagnostic of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file, start, end, severity (desc) and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+Primary pairs keeping the first one.
func (b *Bag) Dedup() {
	seen := make(map[string]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code, d.Primary)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}

// Filter keeps diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}
