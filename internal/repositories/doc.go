// Package repositories implements SQLite persistence for kmx entities.
//
// Key Implementations:
//   - [SnapshotRepository] : rendered list snapshots with index-path lookups
//
// Records are soft deleted via deleted_at timestamps and excluded from queries by default.
// Sequence numbers provide stable, human-readable ordering (snapshot #3) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
