package validation

import "testing"

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("code", "C001", v)
	Required("name", "   ", v)
	if v.Has("code") {
		t.Error("code should pass")
	}
	if !v.Has("name") {
		t.Error("blank name should be flagged")
	}
	if v["name"] != "required" {
		t.Errorf("expected required code, got %q", v["name"])
	}
	if v.Empty() {
		t.Error("violations should not be empty")
	}
}

func TestPositiveFloat(t *testing.T) {
	v := make(Violations)
	PositiveFloat("quantity", 2, v)
	PositiveFloat("unit_price", 0, v)
	if v.Has("quantity") {
		t.Error("positive value should pass")
	}
	if v["unit_price"] != "must_be_positive" {
		t.Errorf("expected must_be_positive, got %q", v["unit_price"])
	}
}

func TestOneOf(t *testing.T) {
	statuses := []string{"draft", "sent", "accepted", "rejected"}
	v := make(Violations)
	OneOf("status", "sent", statuses, v)
	OneOf("status2", "final", statuses, v)
	OneOf("status3", "", statuses, v)
	if v.Has("status") || v.Has("status3") {
		t.Error("valid and blank values should pass")
	}
	if v["status2"] != "out_of_range" {
		t.Errorf("expected out_of_range, got %q", v["status2"])
	}
}
