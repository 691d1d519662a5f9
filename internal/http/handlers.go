package http

import (
	"errors"
	"fmt"
	"net/http"

	"expensetracker/internal/controller"
	"expensetracker/internal/filter"
	"expensetracker/internal/log"
	"expensetracker/internal/view"
)

// tableResponse is the view state plus the notifications raised since the
// previous response.
type tableResponse struct {
	view.Snapshot
	Filter   string   `json:"filter,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

type filterResponse struct {
	Highlighted []int    `json:"highlighted"`
	Messages    []string `json:"messages,omitempty"`
}

func (s *Server) table() tableResponse {
	resp := tableResponse{
		Snapshot: s.view.Snapshot(),
		Messages: s.view.DrainMessages(),
	}
	if f, ok := s.controller.ActiveFilter(); ok {
		resp.Filter = describeFilter(f)
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table())
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	amount, err := p.Float("amount")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	category := p.Get("category")

	if !s.controller.AddTransaction(amount, category) {
		log.FromContext(r.Context()).Info("Transaction rejected",
			log.NewFields().WithOperation(log.OpAdd).WithInput(amount, category).ToSlice()...)
		writeError(w, http.StatusUnprocessableEntity, "invalid amount or category", nil)
		return
	}
	writeJSON(w, http.StatusCreated, s.table())
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	f, err := filter.New(filter.Kind(p.Get("kind")), p.Get("value"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	s.controller.SetFilter(f)
	writeJSON(w, http.StatusOK, map[string]string{"filter": describeFilter(f)})
}

func (s *Server) handleClearFilter(w http.ResponseWriter, r *http.Request) {
	s.controller.ClearFilter()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyFilter(w http.ResponseWriter, r *http.Request) {
	rows := s.controller.ApplyFilter()
	if rows == nil {
		rows = []int{}
	}
	writeJSON(w, http.StatusOK, filterResponse{
		Highlighted: rows,
		Messages:    s.view.DrainMessages(),
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	row, err := p.Int("row")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	if err := s.controller.Undo(row); err != nil {
		if errors.Is(err, controller.ErrInvalidRow) {
			writeError(w, http.StatusUnprocessableEntity, err.Error(), s.view.DrainMessages())
			return
		}
		log.FromContext(r.Context()).Error("Undo failed", log.FieldRow, row, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "undo failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, s.table())
}

func describeFilter(f filter.Strategy) string {
	if str, ok := f.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", f)
}
