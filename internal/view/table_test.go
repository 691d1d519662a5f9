package view

import (
	"testing"

	"expensetracker/internal/controller"
	"expensetracker/internal/core"
	"expensetracker/internal/filter"
	"expensetracker/internal/model"
)

func TestUndoButtonDisabledInitially(t *testing.T) {
	tbl := NewTable()
	if tbl.Snapshot().UndoEnabled {
		t.Fatal("expected undo disabled before any transaction")
	}
}

func TestTableWithController(t *testing.T) {
	m := model.New()
	tbl := NewTable()
	c := controller.New(m, tbl)

	if !c.AddTransaction(50, "food") {
		t.Fatal("expected add to succeed")
	}
	// one transaction row plus the total row
	if got := tbl.TableModel().RowCount(); got != 2 {
		t.Fatalf("row count = %d, want 2", got)
	}
	snap := tbl.Snapshot()
	if !snap.UndoEnabled {
		t.Fatal("expected undo enabled")
	}
	if snap.Total != 50 {
		t.Fatalf("total = %v, want 50", snap.Total)
	}
	if !snap.Rows[1].Total || snap.Rows[1].Amount != 50 {
		t.Fatalf("unexpected total row %+v", snap.Rows[1])
	}
	if r := snap.Rows[0]; r.Serial != 1 || r.Category != "food" || r.Date != m.Transactions()[0].Timestamp() {
		t.Fatalf("unexpected row %+v", r)
	}

	if err := c.Undo(0); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := tbl.TableModel().RowCount(); got != 1 {
		t.Fatalf("row count after undo = %d, want 1", got)
	}
	if snap := tbl.Snapshot(); snap.Total != 0 {
		t.Fatalf("total after undo = %v, want 0", snap.Total)
	}
	msgs := tbl.DrainMessages()
	if len(msgs) != 1 || msgs[0] != controller.MsgRemoved {
		t.Fatalf("messages = %v", msgs)
	}
	if len(tbl.DrainMessages()) != 0 {
		t.Fatal("expected messages drained")
	}
}

func TestHighlightAndRefresh(t *testing.T) {
	m := model.New()
	tbl := NewTable()
	c := controller.New(m, tbl)
	c.AddTransaction(50, "food")
	c.AddTransaction(100, "entertainment")
	c.AddTransaction(75, "travel")

	c.SetFilter(filter.NewCategoryFilter("entertainment"))
	c.ApplyFilter()
	if got := tbl.Snapshot().Highlighted; len(got) != 1 || got[0] != 1 {
		t.Fatalf("highlighted = %v, want [1]", got)
	}

	c.Refresh()
	if got := tbl.Snapshot().Highlighted; len(got) != 0 {
		t.Fatalf("expected highlight cleared by refresh, got %v", got)
	}
}

func TestTableModelAddRow(t *testing.T) {
	tbl := NewTable()
	tbl.TableModel().AddRow(12.5, "bills", "01-01-2026 10:00:00.000")
	tbl.TableModel().AddRow("not a number")

	snap := tbl.Snapshot()
	if len(snap.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(snap.Rows))
	}
	if r := snap.Rows[0]; r.Amount != 12.5 || r.Category != "bills" || r.Serial != 1 {
		t.Fatalf("unexpected row %+v", r)
	}
	if r := snap.Rows[1]; r.Amount != 0 || r.Serial != 2 {
		t.Fatalf("unexpected row %+v", r)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tbl := NewTable()
	tbl.RefreshTable([]*core.Transaction{core.NewTransaction(1, "food")})
	tbl.HighlightRows([]int{0})

	snap := tbl.Snapshot()
	snap.Rows[0].Amount = 99
	snap.Highlighted[0] = 7

	again := tbl.Snapshot()
	if again.Rows[0].Amount != 1 || again.Highlighted[0] != 0 {
		t.Fatalf("snapshot aliased internal state: %+v", again)
	}
}
