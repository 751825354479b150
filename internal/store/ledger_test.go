package store

import (
	"path/filepath"
	"testing"

	"github.com/rehanFauzan/uangbro-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	u := models.User{
		Username:     username,
		PasswordHash: "x",
		APIToken:     "token-" + username,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &u
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func input(id string) UpsertInput {
	return UpsertInput{
		ID:       id,
		Type:     "expense",
		Amount:   amount("25000"),
		Category: "Food",
		Date:     "2024-01-15",
	}
}

func TestUpsert_AnonymousInsertIsLegacy(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)

	tx, err := s.Upsert(nil, input("t1"))
	if err != nil {
		t.Fatalf("Upsert() error = %v, want nil", err)
	}
	if tx.UserID != nil {
		t.Errorf("anonymous insert got user_id %v, want NULL", *tx.UserID)
	}
}

func TestUpsert_SameIDUpdatesNeverDuplicates(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "alice")

	if _, err := s.Upsert(u, input("t1")); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	in := input("t1")
	in.Amount = amount("30000")
	if _, err := s.Upsert(u, in); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Where("id = ?", "t1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("stored %d rows for id t1, want 1", count)
	}

	tx, err := s.Get("t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !tx.Amount.Equal(amount("30000")) {
		t.Errorf("amount = %s, want 30000", tx.Amount)
	}
}

func TestUpsert_ImplicitClaim(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "alice")

	if _, err := s.Upsert(nil, input("t1")); err != nil {
		t.Fatalf("anonymous Upsert() error = %v", err)
	}

	in := input("t1")
	in.Amount = amount("30000")
	tx, err := s.Upsert(u, in)
	if err != nil {
		t.Fatalf("Upsert() error = %v, want nil", err)
	}
	if tx.UserID == nil || *tx.UserID != u.ID {
		t.Errorf("legacy row not claimed: user_id = %v, want %d", tx.UserID, u.ID)
	}
}

func TestUpsert_AnonymousCannotUpdateLegacy(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)

	if _, err := s.Upsert(nil, input("t1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	in := input("t1")
	in.Amount = amount("1")
	_, err := s.Upsert(nil, in)
	if err != ErrUnauthenticated {
		t.Fatalf("Upsert() error = %v, want ErrUnauthenticated", err)
	}

	tx, _ := s.Get("t1")
	if !tx.Amount.Equal(amount("25000")) {
		t.Errorf("row modified by rejected write: amount = %s", tx.Amount)
	}
}

func TestUpsert_ForeignRowRejectedUnchanged(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	v := newTestUser(t, db, "victor")
	u := newTestUser(t, db, "ulrich")

	if _, err := s.Upsert(v, input("t1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	in := input("t1")
	in.Amount = amount("999")
	_, err := s.Upsert(u, in)
	if err != ErrUnauthorized {
		t.Fatalf("Upsert() error = %v, want ErrUnauthorized", err)
	}

	tx, _ := s.Get("t1")
	if !tx.Amount.Equal(amount("25000")) {
		t.Errorf("row modified by rejected write: amount = %s", tx.Amount)
	}
	if tx.UserID == nil || *tx.UserID != v.ID {
		t.Errorf("ownership changed by rejected write: user_id = %v", tx.UserID)
	}
}

func TestUpsert_NegativeAmountRejected(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)

	in := input("t1")
	in.Amount = amount("-5")
	if _, err := s.Upsert(nil, in); err != ErrValidation {
		t.Fatalf("Upsert() error = %v, want ErrValidation", err)
	}

	if _, err := s.Get("t1"); err != ErrNotFound {
		t.Errorf("rejected write created a row: Get() error = %v", err)
	}
}

func TestUpsert_ZeroAmountAllowed(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)

	in := input("t1")
	in.Amount = amount("0")
	if _, err := s.Upsert(nil, in); err != nil {
		t.Fatalf("Upsert() error = %v, want nil", err)
	}
}

// The full walkthrough: anonymous create, authenticated takeover, foreign
// write rejected.
func TestUpsert_OwnershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")
	v := newTestUser(t, db, "victor")

	if _, err := s.Upsert(nil, input("t1")); err != nil {
		t.Fatalf("anonymous insert: %v", err)
	}
	tx, _ := s.Get("t1")
	if tx.UserID != nil {
		t.Fatalf("fresh row should be legacy")
	}

	in := input("t1")
	in.Amount = amount("30000")
	if _, err := s.Upsert(u, in); err != nil {
		t.Fatalf("claiming update: %v", err)
	}

	in.Amount = amount("1")
	if _, err := s.Upsert(v, in); err != ErrUnauthorized {
		t.Fatalf("foreign update error = %v, want ErrUnauthorized", err)
	}

	tx, _ = s.Get("t1")
	if tx.UserID == nil || *tx.UserID != u.ID {
		t.Errorf("user_id = %v, want %d", tx.UserID, u.ID)
	}
	if !tx.Amount.Equal(amount("30000")) {
		t.Errorf("amount = %s, want 30000", tx.Amount)
	}
}

func TestList_ReadSets(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")
	v := newTestUser(t, db, "victor")

	mustUpsert := func(caller *models.User, id, date string) {
		in := input(id)
		in.Date = date
		if _, err := s.Upsert(caller, in); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	mustUpsert(nil, "legacy1", "2024-01-10")
	mustUpsert(nil, "legacy2", "2024-01-12")
	mustUpsert(u, "mine", "2024-01-11")
	mustUpsert(v, "theirs", "2024-01-13")

	ids := func(txs []models.Transaction) map[string]bool {
		m := make(map[string]bool, len(txs))
		for _, tx := range txs {
			m[tx.ID] = true
		}
		return m
	}

	anon, err := s.List(nil)
	if err != nil {
		t.Fatalf("List(nil) error = %v", err)
	}
	got := ids(anon)
	if len(got) != 2 || !got["legacy1"] || !got["legacy2"] {
		t.Errorf("anonymous read set = %v, want only legacy rows", got)
	}

	own, err := s.List(u)
	if err != nil {
		t.Fatalf("List(u) error = %v", err)
	}
	got = ids(own)
	if len(got) != 3 || !got["legacy1"] || !got["legacy2"] || !got["mine"] {
		t.Errorf("authenticated read set = %v, want own plus legacy", got)
	}
	if got["theirs"] {
		t.Error("read set leaked another user's row")
	}
}

func TestList_OrderedByDateDescending(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)

	for _, row := range []struct{ id, date string }{
		{"a", "2024-01-10"},
		{"b", "2024-03-01"},
		{"c", "2024-02-20"},
	} {
		in := input(row.id)
		in.Date = row.date
		if _, err := s.Upsert(nil, in); err != nil {
			t.Fatalf("seed %s: %v", row.id, err)
		}
	}

	txs, err := s.List(nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"b", "c", "a"}
	if len(txs) != len(want) {
		t.Fatalf("got %d rows, want %d", len(txs), len(want))
	}
	for i, id := range want {
		if txs[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, txs[i].ID, id)
		}
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")
	v := newTestUser(t, db, "victor")

	if _, err := s.Upsert(nil, input("legacy")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Upsert(v, input("theirs")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.Delete(nil, "legacy"); err != ErrUnauthenticated {
		t.Errorf("anonymous delete of legacy row error = %v, want ErrUnauthenticated", err)
	}
	if err := s.Delete(u, "theirs"); err != ErrUnauthorized {
		t.Errorf("foreign delete error = %v, want ErrUnauthorized", err)
	}
	if err := s.Delete(u, "missing"); err != ErrNotFound {
		t.Errorf("delete of unknown id error = %v, want ErrNotFound", err)
	}

	// any resolved caller may delete a legacy row
	if err := s.Delete(u, "legacy"); err != nil {
		t.Errorf("delete of legacy row error = %v, want nil", err)
	}
	if _, err := s.Get("legacy"); err != ErrNotFound {
		t.Errorf("row still present after delete")
	}

	// owner may delete their own
	if err := s.Delete(v, "theirs"); err != nil {
		t.Errorf("owner delete error = %v, want nil", err)
	}
}

func TestClaim(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")
	v := newTestUser(t, db, "victor")

	if _, err := s.Upsert(nil, input("a")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Upsert(v, input("b")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// a is legacy, b already owned by v, c does not exist
	changed, err := s.Claim(u, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	txA, _ := s.Get("a")
	if txA.UserID == nil || *txA.UserID != u.ID {
		t.Errorf("a.user_id = %v, want %d", txA.UserID, u.ID)
	}
	txB, _ := s.Get("b")
	if txB.UserID == nil || *txB.UserID != v.ID {
		t.Errorf("b.user_id = %v, want %d (unchanged)", txB.UserID, v.ID)
	}
}

func TestClaim_Idempotent(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")

	for _, id := range []string{"a", "b"} {
		if _, err := s.Upsert(nil, input(id)); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	first, err := s.Claim(u, []string{"a", "b"})
	if err != nil {
		t.Fatalf("first Claim() error = %v", err)
	}
	if first != 2 {
		t.Errorf("first changed = %d, want 2", first)
	}

	second, err := s.Claim(u, []string{"a", "b"})
	if err != nil {
		t.Fatalf("second Claim() error = %v", err)
	}
	if second != 0 {
		t.Errorf("second changed = %d, want 0", second)
	}

	for _, id := range []string{"a", "b"} {
		tx, _ := s.Get(id)
		if tx.UserID == nil || *tx.UserID != u.ID {
			t.Errorf("%s.user_id = %v, want %d", id, tx.UserID, u.ID)
		}
	}
}

func TestClaim_RequiresCallerAndIDs(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")

	if _, err := s.Claim(nil, []string{"a"}); err != ErrUnauthenticated {
		t.Errorf("Claim(nil) error = %v, want ErrUnauthenticated", err)
	}
	if _, err := s.Claim(u, nil); err != ErrValidation {
		t.Errorf("Claim(u, nil) error = %v, want ErrValidation", err)
	}
}

// Two users racing for the same legacy row: the conditional write lets only
// one through, the other sees it as already owned.
func TestClaim_SingleWinner(t *testing.T) {
	db := newTestDB(t)
	s := NewLedgerStore(db)
	u := newTestUser(t, db, "ulrich")
	v := newTestUser(t, db, "victor")

	if _, err := s.Upsert(nil, input("contested")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uChanged, err := s.Claim(u, []string{"contested"})
	if err != nil {
		t.Fatalf("Claim(u) error = %v", err)
	}
	vChanged, err := s.Claim(v, []string{"contested"})
	if err != nil {
		t.Fatalf("Claim(v) error = %v", err)
	}

	if uChanged+vChanged != 1 {
		t.Errorf("total changed = %d, want exactly 1 winner", uChanged+vChanged)
	}

	tx, _ := s.Get("contested")
	if tx.UserID == nil || *tx.UserID != u.ID {
		t.Errorf("user_id = %v, want first claimer %d", tx.UserID, u.ID)
	}
}
