package postgres

import "testing"

func TestPgIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sales_data", `"sales_data"`},
		{`weird"name`, `"weird""name"`},
		{"MixedCase", `"MixedCase"`},
	}
	for _, tt := range tests {
		if got := pgIdent(tt.in); got != tt.want {
			t.Errorf("pgIdent(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}

func TestPgFQN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sales_data", `"sales_data"`},
		{"public.sales_data", `"public"."sales_data"`},
		{`s.x"y`, `"s"."x""y"`},
	}
	for _, tt := range tests {
		if got := pgFQN(tt.in); got != tt.want {
			t.Errorf("pgFQN(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}
