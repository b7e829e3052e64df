package builtin

import "salesetl/pkg/records"

// Require drops any record missing a value for one of the specified fields.
// It is the identity sanitizer: run it after Coerce so that unparsable
// identifier cells (now nil) remove their rows before identity is used for
// filtering or joining.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty.
func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			v, exists := rec[f]
			if !exists || v == nil || v == "" {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
