// Package setlist implements the setlist engine: lock-aware partitioning, display sorting,
// the mix shuffle and every host intent (add, edit, delete, move, lock, rename, import).
//
// Every transform takes a [models.State] by value and returns a new one. The input is
// never modified, so hosts can keep the previous document around (for instance to
// detect a no-op mix, which returns its input unchanged).
//
// Transforms that need collation, randomness, ids or a clock hang off [Engine]; the rest
// are plain functions.
package setlist
