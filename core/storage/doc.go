// Package storage provides the S3/MinIO client used to archive report exports.
//
// Archiving is optional: when the storage section is disabled in configuration
// the reports feature simply skips the upload. The Client interface is kept
// narrow (bucket check, bucket create, object upload) so tests can mock it
// with testify, see the mocks subpackage.
package storage
