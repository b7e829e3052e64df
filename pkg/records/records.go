// Package records defines the dynamic row representation shared by the
// parser and the transformer chain. A nil value is the null marker: parsers
// store nil for empty cells and coercion replaces unparsable cells with nil.
package records

// Record is a single parsed row keyed by canonical column name.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
