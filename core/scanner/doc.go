// Package scanner walks a directory tree through an afero.Fs and builds a fresh tree.Volume.
//
// The walk is depth-first. Directory and file names listed in Config are excluded entirely.
// A read error on an entry is logged and that branch is skipped; it never aborts the walk.
// File links are catalogued with their target's size and mtime; directory links are not followed.
package scanner
