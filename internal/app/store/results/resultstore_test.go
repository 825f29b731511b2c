package resultstore_test

import (
	"testing"

	resultstore "github.com/dalemusser/auxilium/internal/app/store/results"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
)

func TestStore_ListGroupsByTypeThenPercentage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resultstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rows := []models.Result{
		{Type: models.ResultISC, StudentName: "A", Percentage: 91},
		{Type: models.ResultICSE, StudentName: "B", Percentage: 88.5},
		{Type: models.ResultICSE, StudentName: "C", Percentage: 97.2},
		{Type: models.ResultISC, StudentName: "D", Percentage: 95},
	}
	for _, r := range rows {
		if _, err := store.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"C", "B", "D", "A"}
	for i, r := range list {
		if r.StudentName != want[i] {
			t.Fatalf("order = %+v, want %v", list, want)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resultstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r, err := store.Create(ctx, models.Result{Type: models.ResultICSE, StudentName: "B", Percentage: 80})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := store.Update(ctx, r.ID, resultstore.Update{Type: models.ResultISC, StudentName: "B", Percentage: 82.5})
	if err != nil || got.Type != models.ResultISC || got.Percentage != 82.5 {
		t.Fatalf("Update = %+v, %v", got, err)
	}
}
