package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	if err != nil || role != RoleAdmin {
		t.Fatalf("expected admin role, got %q err=%v", role, err)
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected unknown role to fail")
	}
	if Role("").IsValid() {
		t.Fatal("empty role must be invalid")
	}
}

func TestRoleFor(t *testing.T) {
	if RoleFor(true) != RoleAdmin || RoleFor(false) != RoleCustomer {
		t.Fatal("unexpected role mapping")
	}
}
