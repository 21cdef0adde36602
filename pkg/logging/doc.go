// Package logging provides structured diagnostic logging for podbay.
//
// It is a thin layer over Go's standard slog package. Every entry carries a
// subsystem identifier ("Engine", "Service", "ArgStore", ...) so output from
// the collaborating components can be filtered. Operator-facing output never
// goes through this package; that is the console layer's job. Logging here
// is for diagnostics only, off below warning level unless --verbose raises
// it.
//
// Usage:
//
//	logging.Init(logging.LevelDebug, os.Stderr)
//	logging.Info("Engine", "graph root resolved to %s", root)
//	logging.Error("Service", err, "daemon-reload failed")
package logging
