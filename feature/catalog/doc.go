// Package catalog persists volume trees and runs the cataloguing pipeline over them.
//
// # Pipeline
//
// Service.Run performs one run:
//
//  1. load every volume from the Repository and check its schema name
//  2. scan the online volumes (a path that is not a directory is kept as catalogued)
//  3. reconcile the scanned trees with the loaded ones
//  4. fill missing types, hash under the configured budget, validate
//  5. save every volume in one transaction
//
// Unknown schema names and load failures abort the run before anything is written.
//
// # Persistence
//
// Store keeps three tables: catalog_volumes, catalog_directories (a parent chain per
// volume) and catalog_files. SaveAll matches rows by their path from the volume root,
// so repeated saves of an unchanged tree write nothing.
//
// # Export
//
// WriteTSV renders one tab separated row per file. Exporter uploads the same document to
// the object storage bucket under "exports/".
//
// # HTTP Endpoints
//
//   - GET /catalog/volumes : Registered volumes with their state counts.
//   - GET /catalog/files : Catalogued files (supports ?volume=, ?state=, ?limit=).
//   - GET /catalog/stale : The next files in the hashing queue (supports ?volume=, ?limit=).
//
// Reads are served from a snapshot reloaded after the configured TTL; concurrent reloads
// are collapsed into one.
package catalog
