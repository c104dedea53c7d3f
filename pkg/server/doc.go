// Package server assembles the HTTP surface of the mirror proxy: probe and
// metrics endpoints, the bot-method catch-all route, the middleware chain,
// and graceful shutdown on signal or context cancellation.
package server
