package domain

const (
	// DefaultHistorySize is the number of undoable edits kept by an undo manager
	// when no size is configured.
	DefaultHistorySize = 100

	// RootID and LayerID are the ids given to the structural root and its first
	// layer when a model creates them.
	RootID  = "0"
	LayerID = "1"
)
