package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage"
	"github.com/shopspring/decimal"
)

// openTestStore connects to TEST_DATABASE_URL and empties the clients table.
func openTestStore(t *testing.T) *ClientStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() err=%v", err)
	}
	if _, err := s.db.ExecContext(ctx, `TRUNCATE clients`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveFindUpdateDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := models.NewClient("Alek", "a@a.pl", decimal.RequireFromString("100.5"))
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if a.ID == "" {
		t.Fatal("Save() did not assign an ID")
	}

	got, err := s.FindByEmail(ctx, "a@a.pl")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != a.ID || !got.Balance.Equal(a.Balance) {
		t.Fatalf("got=%v want=%v", got, a)
	}
	if _, err := s.FindByEmail(ctx, "A@A.pl"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	byID, err := s.FindByID(ctx, a.ID)
	if err != nil || byID.Email != "a@a.pl" {
		t.Fatalf("FindByID() got=%v err=%v", byID, err)
	}

	got.Balance = decimal.NewFromInt(7)
	if err := s.Update(ctx, got); err != nil {
		t.Fatal(err)
	}
	got, _ = s.FindByEmail(ctx, "a@a.pl")
	if !got.Balance.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("balance=%s want=7", got.Balance)
	}

	if err := s.Delete(ctx, got); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindByEmail(ctx, "a@a.pl"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if _, err := s.FindByID(ctx, a.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("FindByID want ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateRollsBackOnMissingClient(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := models.NewClient("Alek", "a@a.pl", decimal.NewFromInt(100))
	_ = s.Save(ctx, a)

	a.Balance = decimal.Zero
	ghost := &models.Client{ID: "00000000-0000-0000-0000-000000000000", Email: "x@x.pl"}
	if err := s.Update(ctx, a, ghost); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	got, _ := s.FindByEmail(ctx, "a@a.pl")
	if !got.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("update not rolled back: balance=%s", got.Balance)
	}
}

func TestFindByEmailReturnsFirstSaved(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Save(ctx, models.NewClient("Alek", "a@a.pl", decimal.Zero))
	_ = s.Save(ctx, models.NewClient("Bartek", "a@a.pl", decimal.Zero))

	got, err := s.FindByEmail(ctx, "a@a.pl")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alek" {
		t.Fatalf("name=%s want=Alek", got.Name)
	}
}
