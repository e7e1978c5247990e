// Package main hosts the songfetch CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, applies per-invocation flag
// overrides, wires the search, download and transcode backends selected in
// the config, and hands the title file to the pipeline runner. Inspection
// commands (list, status) and editing commands (add, config) work on the
// same configuration without touching the network.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through commands and flags.
package main
