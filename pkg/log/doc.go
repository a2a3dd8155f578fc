// Package log provides diaglog's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that feeds a formatter/output
// pipeline, so output stays consistent across the codebase while remaining
// interoperable with the slog ecosystem.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("logbuf"))
//	l.Info("entry ingested", log.Str("category", "power"))
//
// # Interop
//
// To capture logs emitted through the standard library (Pebble uses the
// stdlib logger), use RedirectStdLog.
package log
