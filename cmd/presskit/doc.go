// Package main hosts the presskit CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into draft
// store operations, asset validation runs, upload passes, and the final
// submission call. It centralizes configuration resolution, draft loading,
// and logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
