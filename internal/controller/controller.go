// Package controller mediates between user input, the transaction model and
// the view.
//
// Every exported operation runs under a single lock so that one user action
// (add, filter, undo, refresh) is applied to the model and reflected in the
// view before the next one starts.
package controller

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/filter"
	"expensetracker/internal/log"
	"expensetracker/internal/model"
)

// ErrInvalidRow is returned by Undo when the row does not address a transaction.
var ErrInvalidRow = errors.New("invalid row")

type Controller struct {
	mu        sync.Mutex
	model     *model.Model
	view      View
	validator core.Validator
	logger    *log.Logger
	events    EventPublisher

	// active is nil when no filter is applied.
	active filter.Strategy
}

// Option configures a Controller.
type Option func(*Controller)

// WithValidator replaces the default input validation rules.
func WithValidator(v core.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l.WithComponent(log.ComponentController)
		}
	}
}

// WithEvents publishes model changes to p.
func WithEvents(p EventPublisher) Option {
	return func(c *Controller) {
		if p != nil {
			c.events = p
		}
	}
}

// New returns a controller over m that reports to v.
func New(m *model.Model, v View, opts ...Option) *Controller {
	c := &Controller{
		model:     m,
		view:      v,
		validator: core.DefaultRules(),
		logger:    log.Discard(),
		events:    nopPublisher{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFilter makes s the active filter. A nil s clears it.
func (c *Controller) SetFilter(s filter.Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = s
	if s == nil {
		c.logger.Debug("Filter cleared", log.FieldOperation, log.OpFilter)
		return
	}
	c.logger.Debug("Filter set", log.FieldOperation, log.OpFilter, log.FieldFilter, describe(s))
}

// ClearFilter removes the active filter.
func (c *Controller) ClearFilter() {
	c.SetFilter(nil)
}

// ActiveFilter returns the active filter and whether one is set.
func (c *Controller) ActiveFilter() (filter.Strategy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != nil
}

// AddTransaction validates the input and, if valid, records a new
// transaction and updates the view. It reports whether the transaction was
// added; on failure neither the model nor the view is touched.
func (c *Controller) AddTransaction(amount float64, category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	category = strings.TrimSpace(category)
	if !c.validator.IsValidAmount(amount) {
		c.logger.Debug("Rejected transaction", log.NewFields().
			WithOperation(log.OpValidate).
			WithInput(amount, category).
			WithError(core.ErrInvalidAmount).ToSlice()...)
		return false
	}
	// An empty category never makes a transaction, whatever the validator says.
	if category == "" || !c.validator.IsValidCategory(category) {
		c.logger.Debug("Rejected transaction", log.NewFields().
			WithOperation(log.OpValidate).
			WithInput(amount, category).
			WithError(core.ErrInvalidCategory).ToSlice()...)
		return false
	}

	t := core.NewTransaction(amount, category)
	c.model.AddTransaction(t)
	c.view.EnableUndoButton()
	c.view.TableModel().AddRow(t.Amount(), t.Category(), t.Timestamp())
	c.refresh()

	c.logger.Info("Transaction added", log.NewFields().
		WithOperation(log.OpAdd).
		WithTransaction(t.ID().String(), t.Amount(), t.Category()).ToSlice()...)
	c.publish(log.OpAdd, t, c.events.TransactionAdded)
	return true
}

// ApplyFilter highlights the rows matched by the active filter and returns
// their indices in the unfiltered sequence, in the order the filter produced
// them. Without an active filter the user is told so and nil is returned.
func (c *Controller) ApplyFilter() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		c.view.ShowMessage(MsgNoFilter)
		c.view.ToFront()
		return nil
	}

	transactions := c.model.Transactions()
	matched := c.active.Filter(transactions)
	rows := make([]int, 0, len(matched))
	for _, t := range matched {
		if i := indexOf(transactions, t); i != -1 {
			rows = append(rows, i)
		}
	}
	c.view.HighlightRows(rows)

	c.logger.Debug("Filter applied",
		log.FieldOperation, log.OpFilter,
		log.FieldFilter, describe(c.active),
		log.FieldRows, rows)
	return rows
}

// Undo removes the transaction displayed at row.
//
// On an empty model the user is told there is nothing to undo. A row that
// does not address a transaction leaves the model alone, notifies the user
// and returns an error wrapping ErrInvalidRow.
func (c *Controller) Undo(row int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	transactions := c.model.Transactions()
	if len(transactions) == 0 {
		c.view.ShowMessage(MsgNothingToUndo)
		c.view.ToFront()
		return nil
	}
	if row < 0 || row >= len(transactions) {
		c.logger.Warn("Undo rejected",
			log.FieldOperation, log.OpUndo,
			log.FieldRow, row,
			log.FieldCount, len(transactions))
		c.view.ShowMessage(MsgInvalidRow)
		c.view.ToFront()
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidRow, row, len(transactions))
	}

	t := transactions[row]
	c.model.RemoveTransaction(t)
	c.refresh()
	c.view.ShowMessage(MsgRemoved)
	c.view.ToFront()

	c.logger.Info("Transaction removed", log.NewFields().
		WithOperation(log.OpUndo).
		WithTransaction(t.ID().String(), t.Amount(), t.Category()).ToSlice()...)
	c.publish(log.OpUndo, t, c.events.TransactionRemoved)
	return nil
}

// Refresh redraws the view's table from the model.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
}

func (c *Controller) refresh() {
	c.view.RefreshTable(c.model.Transactions())
}

// Transactions returns the model's transactions in display order.
func (c *Controller) Transactions() []*core.Transaction {
	return c.model.Transactions()
}

// Total returns the sum of all transaction amounts.
func (c *Controller) Total() float64 {
	return core.Total(c.model.Transactions())
}

func (c *Controller) publish(op string, t *core.Transaction, send func(*core.Transaction) error) {
	if err := send(t); err != nil {
		c.logger.Error("Failed to publish transaction event", log.NewFields().
			WithOperation(op).
			WithTransaction(t.ID().String(), t.Amount(), t.Category()).
			WithError(err).ToSlice()...)
	}
}

func indexOf(ts []*core.Transaction, t *core.Transaction) int {
	for i, item := range ts {
		if item == t {
			return i
		}
	}
	return -1
}

func describe(s filter.Strategy) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s)
}
