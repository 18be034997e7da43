// Package reports aggregates maintenance history into filterable reports
// and spreadsheet exports. Rendered exports are archived to object storage
// when a storage client is configured.
package reports
