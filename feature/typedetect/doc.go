// Package typedetect fills the type tag of catalog files between reconciliation and hashing.
//
// Detection runs only for files whose type is still empty, so an expensive ExifTool call
// happens once per file over the catalog's life. A file nothing can identify is tagged
// tree.UnknownType and is not retried.
package typedetect
