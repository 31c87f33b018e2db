// Package logger builds configured slog.Logger instances: JSON or text
// output, level selection, static attributes. The stores accept the result
// through their WithLogger options.
package logger
