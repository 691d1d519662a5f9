package controller

import "expensetracker/internal/core"

// Messages shown to the user through View.ShowMessage.
const (
	MsgNoFilter      = "No filter applied"
	MsgNothingToUndo = "Nothing to undo"
	MsgRemoved       = "Selected transaction removed"
	MsgInvalidRow    = "Invalid row selected"
)

// View is the surface the controller drives. Implementations render the
// transaction table and dialogs; the controller never reads state back
// except through TableModel.
type View interface {
	// RefreshTable redraws the table from ts, in order.
	RefreshTable(ts []*core.Transaction)
	EnableUndoButton()
	TableModel() TableModel
	// HighlightRows marks the given row indices, replacing any previous highlight.
	HighlightRows(indices []int)
	// ToFront brings the view to the foreground.
	ToFront()
	// ShowMessage displays an informational, title-less notification.
	ShowMessage(msg string)
}

// TableModel is the row store behind the view's table.
type TableModel interface {
	AddRow(values ...any)
	RowCount() int
}
