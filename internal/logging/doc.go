// Package logging constructs slog loggers with console or JSON output.
//
// The console handler prints one line per record: RFC3339 timestamp, level,
// optional component prefix, message, then flattened key=value attributes.
package logging
