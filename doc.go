/*
Package clouddiagram is the transactional core of a diagram editor.

A Session holds a document made of cells (vertices, edges and groups), an undo
history, a cache of derived rendering state and a selection. Every edit is a
reversible change executed inside a transaction; the outermost transaction turns
its changes into one undoable edit and fires one notification.

# Packages

  - pkg/model: cells, the mutation API and the structural changes.
  - pkg/undo: the change contract, transactions, edits and the undo manager.
  - pkg/view: the lazily computed view states and drill-down.
  - pkg/selection: the selection, edited through the same transactions.
  - pkg/event: the synchronous, typed listener lists used by all of the above.

# Usage

	s := clouddiagram.New()

	err := s.Update(func() error {
		a, err := s.InsertVertex(nil, "a", "Client", domain.NewGeometry(20, 20, 80, 30), "")
		if err != nil {
			return err
		}
		b, err := s.InsertVertex(nil, "b", "Server", domain.NewGeometry(220, 20, 80, 30), "")
		if err != nil {
			return err
		}
		_, err = s.InsertEdge(nil, "ab", "calls", a, b, "")
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	state := s.State(s.Model().Cell("ab")) // absolute points of the edge
	s.Undo()                                // the whole transaction is reverted

Invalid edits (cycles, unknown cells, dangling terminals) return an error
wrapping domain.ErrStructuralViolation and leave the document unchanged.
*/
package clouddiagram
