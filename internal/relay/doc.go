// Package relay implements the WebSocket chat relay for matched pairs.
//
// The relay is pure fan-out: clients join a room derived from the
// sorted participant ID pair and messages are forwarded to the other
// members of the room. Nothing is persisted and the record store is
// never consulted.
package relay
