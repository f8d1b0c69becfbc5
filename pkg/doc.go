// Package pkg provides shared utilities for the amigakey converter.
//
// This package contains common functionality used across all converter
// subsystems, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for converter failure modes
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with converter-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentMacro, "slot saved", "slot", 2)
//
// # Errors
//
// Converter failure modes are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrChecksum) {
//	    // Stored macros are untrusted; slots were cleared.
//	}
package pkg
