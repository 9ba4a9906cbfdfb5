// Package logging builds the zap loggers used across scribe.
//
// Console output goes to stderr in console or JSON encoding. When a file is
// configured, JSON records are also written to it with size-based rotation.
package logging
