// Package reconcile merges a freshly scanned tree with the tree loaded from the catalog.
//
// The merge is defined recursively over same-named pairs and builds a third graph:
//
//   - Volumes are matched by canonical path. A volume known only to the catalog survives
//     unchanged (not mounted this run); a volume only found by the scan is new.
//   - Directories present on both sides become a new directory holding the union of
//     child names, each merged recursively. A one-sided directory is returned as is.
//   - Files present on both sides become a new file carrying the scanned size and
//     modification time, and the catalogued type, hash and external id.
//
// # File States
//
// The state of a merged file is derived from metadata only, never from content:
//
//   - scanned only: New
//   - catalogued only: Missing
//   - equal size and modification time: Identical
//   - anything else: Modified
//
// Content verification is left to the hashing phase, which may downgrade Identical.
//
// # Ownership
//
// One-sided inputs are returned by reference, not copied. Each input graph is consumed by
// exactly one merge, so callers must not reuse an input after passing it in.
//
// # Usage
//
//	merged, err := reconcile.MergeVolumes(scanned, loaded)
//	summary := reconcile.Summarize(merged[0])
package reconcile
