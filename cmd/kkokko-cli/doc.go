// Package main provides the entry point for kkokko-cli.
//
// kkokko-cli is the command-line management tool for a running
// kkokko-server: registering participants, submitting answers,
// running matches and inspecting aggregate counts.
package main
