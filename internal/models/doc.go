// Package models defines the setlist document and its value types.
//
// The document is a single tree:
//   - [State] : concert name, three ordered [Column] sequences and the [Locks]
//   - [Song] : one repertoire entry, identified by an immutable uid
//   - [SortSpec] : a per-column display sort (field + [SortOrder])
//
// Values are treated as immutable by convention. Transforms in the setlist package
// call [State.Clone] and return the copy, so a caller holding the previous state never
// observes a change. JSON tags match the snapshot format written by earlier versions
// of the planner, so old snapshots load unchanged.
package models
