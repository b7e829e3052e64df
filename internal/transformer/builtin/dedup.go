package builtin

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"salesetl/pkg/records"
)

// DeDup collapses records sharing a key, keeping the first occurrence. The
// customer dataset runs through this before the join so a duplicated
// customer identifier can never multiply sales rows.
//
// Keys are hashed with xxh3 over the string form of each key field, with a
// separator byte between fields. Records missing a key field pass through
// untouched; they are outside the de-dup domain.
type DeDup struct {
	// Keys are the field names that form the business key, e.g. ["customer_id"].
	Keys []string
}

// Apply returns the input with later duplicates removed, preserving order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := in[:0]
	for _, rec := range in {
		key, ok := d.keyOf(rec)
		if !ok {
			out = append(out, rec)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// keyOf hashes the key fields. The second return is false when any key field
// is absent from the record.
func (d DeDup) keyOf(r records.Record) (uint64, bool) {
	h := xxh3.New()
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok {
			return 0, false
		}
		switch t := v.(type) {
		case nil:
			h.Write([]byte{0x00})
		case string:
			h.WriteString(t)
		default:
			h.WriteString(fmt.Sprint(t))
		}
		h.Write([]byte{0x1f})
	}
	return h.Sum64(), true
}
