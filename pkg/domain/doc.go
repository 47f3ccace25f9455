/*
Package domain contains the value types shared by every layer of the diagram core.

It is kept pure and free of behaviour that depends on the cell graph: geometry,
opaque styles and the structural error taxonomy live here so that the model, the
view-state cache and external collaborators (renderers, layouts) agree on them
without importing each other.

# Key Types

  - Point, Rect: plain coordinates.
  - Geometry: position, size, waypoints and floating terminal points of a cell.
  - Style: an opaque style descriptor, stored but never interpreted.
  - StructuralError: the rejection returned by every invalid mutation.
*/
package domain
