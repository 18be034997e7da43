// Package database provides the GORM connection used by all features.
//
// MySQL is the production driver; sqlite is supported for local runs and tests
// (the sync and CRUD test suites run against an in-memory sqlite database).
//
// The schema is owned by this service and applied via AutoMigrate at startup,
// see cmd/start.go.
package database
