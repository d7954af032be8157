package pagination

// SortKind describes the semantic type of a sort column's values.
// It decides how a cursor value is validated before it reaches a query.
type SortKind int

const (
	// KindNumeric columns accept int64 or float64 cursor values.
	KindNumeric SortKind = iota
	// KindText columns accept string cursor values.
	KindText
	// KindTimestamp columns accept RFC 3339 strings, decoded to time.Time.
	KindTimestamp
)

// String returns the name of the kind.
func (k SortKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// SortColumn maps a public sort token to an internal column.
// Column is only ever set from compile-time constants of the persistence layer.
type SortColumn struct {
	Token    string   // Public token, e.g. "-published_at"
	Column   string   // Qualified SQL column, e.g. "b.published_at"
	Kind     SortKind // Value type carried in cursors
	Nullable bool     // NULLs are ordered last and paginated by id
}

// SortSpec is a closed allow-list of sort columns with a documented default.
type SortSpec struct {
	def     SortColumn
	columns map[string]SortColumn
	tokens  []string
}

// NewSortSpec builds an allow-list. The first column is the default.
func NewSortSpec(def SortColumn, others ...SortColumn) SortSpec {
	spec := SortSpec{
		def:     def,
		columns: make(map[string]SortColumn, len(others)+1),
		tokens:  make([]string, 0, len(others)+1),
	}
	for _, c := range append([]SortColumn{def}, others...) {
		if _, dup := spec.columns[c.Token]; dup {
			continue
		}
		spec.columns[c.Token] = c
		spec.tokens = append(spec.tokens, c.Token)
	}
	return spec
}

// Resolve returns the column for token.
// Unknown or empty tokens resolve to the default column instead of failing,
// so stale client query strings keep working.
func (s SortSpec) Resolve(token string) SortColumn {
	if c, ok := s.columns[token]; ok {
		return c
	}
	return s.def
}

// Default returns the default sort column.
func (s SortSpec) Default() SortColumn {
	return s.def
}

// Tokens returns the accepted public tokens in declaration order.
func (s SortSpec) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}
