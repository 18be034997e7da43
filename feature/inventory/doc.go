// Package inventory exposes the read surface over synced devices: the
// paginated/searchable device listing, device detail, component listing and
// the health endpoint. All writes to these tables come from the sync engine;
// this feature only derives display state (maintenance status) on top.
package inventory
