package gate_test

import (
	"context"
	"testing"

	"github.com/tsukino/go-hanbai/gate"
)

func staffResolver() *gate.StaticResolver[string] {
	r := gate.NewStaticResolver[string]()
	r.Set("staff-1", gate.NewStaticProfile("staff",
		gate.NewPermission("customer", gate.ActionList),
		gate.NewPermission("customer", gate.ActionCreate),
		"quote:*",
	))
	r.Set("admin-1", gate.NewStaticProfile("admin", gate.PermissionSuperAdmin))
	return r
}

func TestGate_Authorize_ZeroSubject(t *testing.T) {
	g := gate.New[string](staffResolver())
	if err := g.Authorize(context.Background(), "", gate.ActionList, "customer"); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_NoProfile(t *testing.T) {
	g := gate.New[string](staffResolver())
	if err := g.Authorize(context.Background(), "stranger", gate.ActionList, "customer"); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_Allowed(t *testing.T) {
	g := gate.New[string](staffResolver())
	if err := g.Authorize(context.Background(), "staff-1", gate.ActionCreate, "customer"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGate_Authorize_Denied(t *testing.T) {
	g := gate.New[string](staffResolver())
	if err := g.Authorize(context.Background(), "staff-1", gate.ActionDelete, "customer"); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Can_ResourceWildcard(t *testing.T) {
	g := gate.New[string](staffResolver())
	if !g.Can(context.Background(), "staff-1", gate.ActionDelete, "quote") {
		t.Error("quote:* should grant quote:delete")
	}
	if g.Can(context.Background(), "staff-1", gate.ActionDelete, "invoice") {
		t.Error("quote:* must not grant invoice:delete")
	}
}

func TestGate_Can_SuperAdmin(t *testing.T) {
	g := gate.New[string](staffResolver())
	for _, res := range []string{"customer", "supplier", "invoice", "profile"} {
		if !g.Can(context.Background(), "admin-1", gate.ActionDelete, res) {
			t.Errorf("*:* should grant %s:delete", res)
		}
	}
}
