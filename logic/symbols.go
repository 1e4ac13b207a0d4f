package logic

// SymbolTable records identifiers already declared in a script under construction.
// It is membership-only: declaring a name twice keeps the first entry.
// A table belongs to a single generation call and is never shared.
type SymbolTable struct {
	names []string
	seen  map[string]struct{}
}

// NewSymbolTable creates an empty table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{seen: make(map[string]struct{})}
}

// Declare adds name and reports whether it was new
func (t *SymbolTable) Declare(name string) bool {
	if _, ok := t.seen[name]; ok {
		return false
	}
	t.seen[name] = struct{}{}
	t.names = append(t.names, name)
	return true
}

// Has reports whether name was declared
func (t *SymbolTable) Has(name string) bool {
	_, ok := t.seen[name]
	return ok
}

// Names returns declared identifiers in insertion order
func (t *SymbolTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of declared identifiers
func (t *SymbolTable) Len() int {
	return len(t.names)
}
