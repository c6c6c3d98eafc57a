package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// StringID is a handle to an interned string.
type StringID uint32

// NoStringID is the handle of the empty string.
const NoStringID StringID = 0

// Interner deduplicates identifier text so that AST nodes and symbols
// can compare names by handle.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the handle for s, adding it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// own the bytes so the caller's buffer can be reused
	cpy := string([]byte(s))
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown handle.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings including the empty one.
func (i *Interner) Len() int {
	return len(i.byID)
}

func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
