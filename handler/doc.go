// Package handler provides the Handler interface and its built-in
// implementations for dispatching log entries to various outputs.
//
// Console and file handlers run synchronously or asynchronously. In
// async mode, entries are sent to a bounded channel and processed
// by a background goroutine, which keeps the caller's hot path fast
// even under slow I/O.
//
// When the async queue is full, each handler applies a per-level
// OverflowPolicy: DropNewest (default for Debug/Info/Warn), DropOldest,
// or Block with a configurable timeout (default for Error and above).
// Low-priority logs never stall the application while critical errors
// are never silently dropped.
//
// Each handler picks a formatting path once, at construction. With a
// non-UTF-8 Charset configured it uses formatter.EncodingFormatter,
// otherwise formatter.BufferFormatter, falling back to Format. A
// pattern layout shared by a UTF-8 console and a Latin-1 file is thus
// rendered through both its text and byte paths for the same entry.
//
// Built-in handlers:
//
//   - ConsoleHandler writes formatted entries to any io.Writer (default: stdout).
//   - FileHandler writes to a file with rotation by size, age,
//     or interval, and prunes old backups.
//   - MultiHandler fans out a single entry to multiple child handlers
//     and combines their errors.
//   - SlogHandler adapts the Handler interface to log/slog.Handler;
//     record attributes become the entry's map payload.
//
// Handlers track dropped, blocked, processed, and failed counts via
// the Stats type, which can be queried at runtime for monitoring.
package handler
