// Package main hosts the niclean CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into batch
// sanitization runs, tool availability checks, and configuration
// scaffolding. It centralizes configuration resolution, structured
// logging setup, and report rendering so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
