// Package main provides the entry point for kkokko-server.
//
// The server is the kkokko matching service. It provides:
//
//   - HTTP API for participant registration, answer submission,
//     matching and pairwise comparison
//   - WebSocket chat relay for matched pairs
//   - Durable JSON snapshots of all records
//
// Usage:
//
//	kkokko-server [flags]
//	kkokko-server --config /path/to/config.yaml
//
// The server loads configuration, restores persisted records, and
// serves until interrupted; records are flushed once more on shutdown.
package main
