// Package logging assembles structured slog loggers and formatting helpers used
// across songfetch.
//
// It owns the console and JSON handlers, maps the pipeline verbosity levels
// onto slog levels, and exposes context-aware helpers so pipeline code can tag
// log lines with the run identifier and the title being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same keys.
package logging
