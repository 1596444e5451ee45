// Package storage owns the durable record state for kkokko.
//
// It combines the in-memory collections (memory) with the JSON
// document persistence (snapshot) and funnels every save request
// through a single background writer, so concurrent mutations can
// never interleave partial writes on disk.
//
// Persistence semantics:
//
//   - Load() reads all three documents at startup; any corrupt
//     document resets ALL three collections to empty.
//   - Every append schedules an asynchronous save of the full state.
//   - A ticker saves periodically regardless of write activity.
//   - Close() performs one final synchronous save.
//
// Save failures are logged and never propagate to the mutating call;
// the in-memory state stays authoritative for the running process.
package storage
