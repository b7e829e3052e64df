package builtin

import (
	"testing"

	"salesetl/pkg/records"
)

/*
TestDeDupKeepsFirst verifies that duplicate keys collapse to the first
occurrence and the input order is preserved.
*/
func TestDeDupKeepsFirst(t *testing.T) {
	in := []records.Record{
		{"customer_id": 10, "customer_name": "Ana"},
		{"customer_id": 11, "customer_name": "Bram"},
		{"customer_id": 10, "customer_name": "Ana (dup)"},
	}
	out := DeDup{Keys: []string{"customer_id"}}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("len = %d; want 2", len(out))
	}
	if out[0]["customer_name"] != "Ana" || out[1]["customer_name"] != "Bram" {
		t.Fatalf("wrong winners: %#v", out)
	}
}

func TestDeDupMissingKeyPassesThrough(t *testing.T) {
	in := []records.Record{
		{"customer_name": "no id"},
		{"customer_name": "still no id"},
	}
	out := DeDup{Keys: []string{"customer_id"}}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("records outside the de-dup domain were dropped: %#v", out)
	}
}

func TestDeDupKeyUsesStringForm(t *testing.T) {
	// int 10 and string "10" stringify identically; they should collapse,
	// matching the coerced-upstream usage where both sides are ints already.
	in := []records.Record{
		{"customer_id": 10},
		{"customer_id": "10"},
	}
	out := DeDup{Keys: []string{"customer_id"}}.Apply(in)
	if len(out) != 1 {
		t.Fatalf("len = %d; want 1", len(out))
	}
}

func TestDeDupNoKeys(t *testing.T) {
	in := []records.Record{{"a": 1}, {"a": 1}}
	out := DeDup{}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("DeDup without keys must be a no-op")
	}
}
