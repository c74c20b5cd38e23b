// Package cache persists the verse of the day in a single on-disk slot.
//
// The slot holds exactly one Record, stored as pretty-printed JSON. Writes
// replace the slot atomically (temp file plus rename), so readers never
// observe a partially written record. Reads never fail: a missing,
// unreadable, or corrupt slot is reported as Absent rather than as an
// error, and a decoded record is classified Fresh or Stale against the
// store's Policy at read time. Stale and corrupt slots are left on disk;
// they are only ever replaced by the next successful write or an explicit
// Invalidate.
package cache
