// Package tree holds the in-memory catalog model: volumes, directories and files.
//
// A Volume owns exactly one root Directory. Every other Directory and File has exactly
// one parent, and the parent's child collections are keyed by name, so sibling names are
// unique. Children are attached through AddDirectory and AddFile, which keep the parent
// relation and the child maps in agreement.
//
// # Phases
//
// Each pipeline phase builds its own graph: the scanner produces a fresh tree, the
// reconciler produces a third, merged tree. Only the hashing and validation phases mutate
// the merged tree in place, one after the other.
//
// # Sentinels
//
//   - File.Type == UnknownType means detection ran and found nothing; "" means not yet detected.
//   - ExternalID == NotFound means an enrichment lookup ran and found nothing; "" means not yet looked up.
package tree
