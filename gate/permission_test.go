package gate

import "testing"

func TestPermission_Parse(t *testing.T) {
	res, act := Permission("customer:create").Parse()
	if res != "customer" || act != ActionCreate {
		t.Errorf("Parse() = %q, %q", res, act)
	}
	res, act = Permission("malformed").Parse()
	if res != "" || act != "" {
		t.Errorf("malformed permission should parse to empty parts, got %q, %q", res, act)
	}
}

func TestPermission_Matches(t *testing.T) {
	tests := []struct {
		have      Permission
		requested Permission
		want      bool
	}{
		{"customer:create", "customer:create", true},
		{"customer:create", "customer:delete", false},
		{"customer:*", "customer:delete", true},
		{"customer:*", "invoice:delete", false},
		{"*:*", "invoice:delete", true},
		{"*:*", "anything:at_all", true},
	}
	for _, tt := range tests {
		if got := tt.have.Matches(tt.requested); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.have, tt.requested, got, tt.want)
		}
	}
}
