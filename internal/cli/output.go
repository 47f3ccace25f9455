package cli

import (
	"fmt"
	"io"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/goccy/go-json"
)

// Dump is the machine-readable result of a run.
type Dump struct {
	Name        string               `json:"name,omitempty"`
	Document    model.Snapshot       `json:"document"`
	Selection   []string             `json:"selection"`
	CurrentRoot string               `json:"current_root,omitempty"`
	History     HistoryDump          `json:"history"`
	States      map[string]StateDump `json:"states"`
}

// HistoryDump describes the undo history.
type HistoryDump struct {
	Edits   int  `json:"edits"`
	Cursor  int  `json:"cursor"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// StateDump is the view state of one displayed cell.
type StateDump struct {
	Bounds domain.Rect    `json:"bounds"`
	Points []domain.Point `json:"points,omitempty"`
	Style  domain.Style   `json:"style,omitempty"`
}

func newDump(l *loaded) Dump {
	s := l.session
	d := Dump{
		Name:      l.script.Name,
		Document:  s.Model().Snapshot(),
		Selection: []string{},
		History: HistoryDump{
			Edits:   s.History().Len(),
			Cursor:  s.History().Cursor(),
			CanUndo: s.CanUndo(),
			CanRedo: s.CanRedo(),
		},
		States: make(map[string]StateDump),
	}
	for _, c := range s.Selection().Cells() {
		d.Selection = append(d.Selection, c.ID())
	}
	if root := s.View().CurrentRoot(); root != nil {
		d.CurrentRoot = root.ID()
	}
	for _, c := range s.Model().Descendants(s.Model().Root()) {
		if st := s.State(c); st != nil {
			d.States[c.ID()] = StateDump{Bounds: st.Bounds, Points: st.AbsolutePoints, Style: st.Style}
		}
	}
	return d
}

func writeJSON(w io.Writer, l *loaded) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDump(l)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func writeSummary(w io.Writer, l *loaded) {
	s := l.session
	name := l.script.Name
	if name == "" {
		name = "scenario"
	}
	printSystemMessage(w, "%s: %d steps, %d cells", name, len(l.script.Steps), s.Model().Len())
	printSystemMessage(w, "history: %d edits, cursor %d (undo %t, redo %t)",
		s.History().Len(), s.History().Cursor(), s.CanUndo(), s.CanRedo())
	if n := s.Selection().Len(); n > 0 {
		printSystemMessage(w, "selection: %d cells", n)
	}
}
