package model

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator returns a candidate id for a cell attached without one, or whose
// id is already taken. The model calls it again until the id is free.
type IDGenerator func() string

// UUIDs generates random UUIDv4 ids. It is the default generator.
func UUIDs() IDGenerator {
	return uuid.NewString
}

// SequentialIDs generates prefix+"2", prefix+"3", ... The numbering starts
// after the ids of the default root and layer.
func SequentialIDs(prefix string) IDGenerator {
	next := 2
	return func() string {
		id := prefix + strconv.Itoa(next)
		next++
		return id
	}
}
