package symbols

// ScopeID identifies a scope in the table arena. Scopes refer to their
// parent by ID, so the tree never holds pointers back up the chain.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol inside the table arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
