package policy

import (
	"testing"

	"github.com/rehanFauzan/uangbro-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestDecide_AnonymousLegacy(t *testing.T) {
	d := Decide(nil, nil)

	if !d.CanRead {
		t.Error("anonymous caller should read legacy rows")
	}
	if d.CanWrite || d.CanDelete {
		t.Error("anonymous caller must not write or delete")
	}
}

func TestDecide_AnonymousOwned(t *testing.T) {
	d := Decide(nil, uintPtr(7))

	if d.CanRead || d.CanWrite || d.CanDelete {
		t.Errorf("anonymous caller has no access to owned rows, got %+v", d)
	}
}

func TestDecide_UserLegacy(t *testing.T) {
	u := &models.User{ID: 3}
	d := Decide(u, nil)

	if !d.CanRead || !d.CanWrite || !d.CanDelete {
		t.Errorf("authenticated caller should have full access to legacy rows, got %+v", d)
	}
}

func TestDecide_UserOwnRow(t *testing.T) {
	u := &models.User{ID: 3}
	d := Decide(u, uintPtr(3))

	if !d.CanRead || !d.CanWrite || !d.CanDelete {
		t.Errorf("owner should have full access, got %+v", d)
	}
}

func TestDecide_UserForeignRow(t *testing.T) {
	u := &models.User{ID: 3}
	d := Decide(u, uintPtr(4))

	if d.CanRead || d.CanWrite || d.CanDelete {
		t.Errorf("caller must not touch another user's row, got %+v", d)
	}
}
