// Package sync implements the GLPI synchronization engine.
//
// A sync pass pages through GLPI computers (offset cursor, fixed page size),
// upserts each record into the local database keyed by its GLPI id, and
// replaces the computer's component set wholesale (delete then reinsert, no
// diffing). Each page is committed as one transaction, bounding what a later
// failure can lose to a single page.
//
// # Run state
//
// The StateTracker is a process-wide singleton holding the current run's
// progress (counters, current GLPI id, message, last error). Writes come only
// from the active pass; any request may read a snapshot at any time.
//
// # Single flight
//
// At most one pass runs system-wide, guarded by a try-acquire mutex. The
// background trigger never queues: a contended start reports "already
// running" and callers poll /api/sync/status.
//
// # Error containment
//
// A component fetch failure is isolated to its computer; the pass continues.
// Session init and page fetch failures abort the run, are recorded in the run
// state, and propagate to the caller. Session teardown failures are always
// swallowed. Computers deleted in GLPI are never deleted locally.
package sync
