// Package database handles the catalog database connection and schema inspection.
//
// It wraps GORM so the catalog can live in a local SQLite file (the default) or in a
// shared MySQL server.
//
// # Connect
//
// Connect opens the configured driver, sizes the connection pool and pings the database
// with the configured timeout. Failing here is a configuration error and aborts the run
// before anything is written.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect. The doctor command uses
// it to verify that the catalog tables carry every column the catalog models expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "catalog_files")
package database
