// Package logger holds the process-wide zap logger and the request-scoped
// logger carried in a context.Context.
//
// Call Init once from main, use Named for component loggers and From(ctx)
// inside request handling code.
package logger
