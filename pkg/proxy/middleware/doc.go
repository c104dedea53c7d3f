// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// Middleware functions are chained in a fixed order:
//
//	handler = Recovery(Logging(RequestID(Timeout(handler))))
//
// Order (innermost to outermost):
//  1. Timeout: enforce per-request deadline
//  2. RequestID: generate and propagate request ID
//  3. Logging: log request and response details
//  4. Recovery: recover from panics
//
// Request paths carry full bot credentials, so nothing in this package logs
// a path directly; everything goes through the process logger, whose
// redaction hook scrubs token secrets from every string attribute.
package middleware
