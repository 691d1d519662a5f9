// Package view provides a headless implementation of the controller's view
// surface. It keeps the table, highlight, undo and notification state that a
// windowed front end would render, and hands out snapshots of it.
package view

import (
	"sync"

	"expensetracker/internal/controller"
	"expensetracker/internal/core"
)

// Columns names the table columns in display order.
var Columns = []string{"Serial", "Amount", "Category", "Date"}

// TotalLabel marks the summary row appended after the transactions.
const TotalLabel = "Total"

// Row is one table row. Total rows carry no category or date.
type Row struct {
	Serial   int     `json:"serial,omitempty"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
	Date     string  `json:"date,omitempty"`
	Total    bool    `json:"total,omitempty"`
}

// Snapshot is a point-in-time copy of the view state.
type Snapshot struct {
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
	Total       float64  `json:"total"`
	Highlighted []int    `json:"highlighted"`
	UndoEnabled bool     `json:"undo_enabled"`
	FrontCount  int      `json:"front_count"`
}

// Table is safe for concurrent use.
type Table struct {
	mu          sync.Mutex
	rows        []Row
	total       float64
	highlighted []int
	undoEnabled bool
	front       int
	messages    []string
}

var _ controller.View = (*Table)(nil)

func NewTable() *Table {
	return &Table{}
}

// RefreshTable rebuilds the rows from ts and appends the total row.
// Any highlight is dropped because row indices may have shifted.
func (t *Table) RefreshTable(ts []*core.Transaction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]Row, 0, len(ts)+1)
	for i, tx := range ts {
		rows = append(rows, Row{
			Serial:   i + 1,
			Amount:   tx.Amount(),
			Category: tx.Category(),
			Date:     tx.Timestamp(),
		})
	}
	t.total = core.Total(ts)
	rows = append(rows, Row{Amount: t.total, Total: true})
	t.rows = rows
	t.highlighted = nil
}

func (t *Table) EnableUndoButton() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undoEnabled = true
}

// TableModel returns the row store backing the table.
func (t *Table) TableModel() controller.TableModel {
	return tableModel{t}
}

func (t *Table) HighlightRows(indices []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.highlighted = append([]int(nil), indices...)
}

func (t *Table) ToFront() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.front++
}

// ShowMessage queues msg until the next DrainMessages.
func (t *Table) ShowMessage(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// DrainMessages returns the queued messages and clears the queue.
func (t *Table) DrainMessages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := t.messages
	t.messages = nil
	return msgs
}

func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Columns:     append([]string(nil), Columns...),
		Rows:        append([]Row(nil), t.rows...),
		Total:       t.total,
		Highlighted: append([]int{}, t.highlighted...),
		UndoEnabled: t.undoEnabled,
		FrontCount:  t.front,
	}
}

type tableModel struct{ t *Table }

// AddRow appends a row built from (amount, category, date) values, the
// shape the controller uses. Values of other types are left zero.
func (m tableModel) AddRow(values ...any) {
	m.t.mu.Lock()
	defer m.t.mu.Unlock()

	row := Row{Serial: len(m.t.rows) + 1}
	if len(values) > 0 {
		row.Amount, _ = values[0].(float64)
	}
	if len(values) > 1 {
		row.Category, _ = values[1].(string)
	}
	if len(values) > 2 {
		row.Date, _ = values[2].(string)
	}
	m.t.rows = append(m.t.rows, row)
}

func (m tableModel) RowCount() int {
	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	return len(m.t.rows)
}
