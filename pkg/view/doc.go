/*
Package view derives renderable state from a model.Model.

A View caches one State per visible cell: its absolute origin, its scaled
bounds and, for edges, the scaled absolute points. Entries are computed on the
first read and dropped when a change touches the cell, one of its ancestors, or
a terminal of the edge. Changing the scale or translation drops everything.

The view follows the model's Change notifications on its own. Undo and redo do
not go through transactions, so the owner of the undo history forwards them
with TrackHistory.
*/
package view
