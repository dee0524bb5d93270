// Package main hosts the videosprocessor CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the capture workflow (run), the
// configuration scaffolding (config init/validate/show/path), the external
// tool preflight (deps), and the run journal (history). It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
