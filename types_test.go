package goConsole

import (
	"encoding/json"
	"testing"
)

func TestRoleDescriptorDecodesBareString(t *testing.T) {
	var r RoleDescriptor
	if err := json.Unmarshal([]byte(`"admin"`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.Name != "admin" || r.DisplayName != "" {
		t.Fatalf("unexpected descriptor: %+v", r)
	}
}

func TestRoleDescriptorDecodesObject(t *testing.T) {
	var r RoleDescriptor
	if err := json.Unmarshal([]byte(`{"name":"admin","display_name":"Administrator"}`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.Name != "admin" || r.DisplayName != "Administrator" {
		t.Fatalf("unexpected descriptor: %+v", r)
	}
}

func TestUserRecordDecodesMixedRoleShapes(t *testing.T) {
	raw := `{
		"id": 7,
		"username": "alice",
		"roles": ["viewer", {"name":"admin","display_name":"Administrator"}],
		"permissions": ["users.read"]
	}`

	var u UserRecord
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(u.Roles) != 2 || u.Roles[0].Name != "viewer" || u.Roles[1].Name != "admin" {
		t.Fatalf("unexpected roles: %+v", u.Roles)
	}
}

func TestUserRecordSubjectMapping(t *testing.T) {
	u := &UserRecord{
		Username:    "alice",
		Roles:       []RoleDescriptor{{Name: "Admin", DisplayName: "Administrator"}},
		Permissions: []string{"users.read"},
	}

	s := u.Subject()
	if !s.HasRole("admin") {
		t.Fatal("subject lost role")
	}
	if !s.HasPermission("users.read") {
		t.Fatal("subject lost permission")
	}
}

func TestNilUserRecordSubject(t *testing.T) {
	var u *UserRecord
	if u.Subject() != nil {
		t.Fatal("nil user must yield nil subject")
	}

	var snap Snapshot
	if snap.Subject() != nil {
		t.Fatal("signed-out snapshot must yield nil subject")
	}
}
