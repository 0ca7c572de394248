// Package validation walks reconciled volumes and enforces per-volume naming schemas.
//
// A volume names its schema; the Registry maps that name to a factory and the Engine
// builds the Validator and runs it. Unknown schema names are configuration errors.
//
// # Schemas
//
//   - movie: root / year / title[.year][.resolution].ext
//   - tvseries: root / year / show / season / title.SxxEyy[.name].ext
//   - personal: root / person / year / YYYY-MM-DD[ description] / files
//
// # Violations
//
// Violations are collected as a set of kinds, so "exactly this kind and nothing else" is
// a cheap question, plus the list of (kind, path) findings for presentation. Messages are
// rendered by the message catalog and are not part of the result.
//
// # Enrichment
//
// Movie and TV validators annotate directories and files with external ids through a
// Finder. Lookups never fail validation: a failed or empty lookup stores tree.NotFound so
// the next run does not repeat it.
package validation
