// Package cli provides shared helpers for the tgmirror command: typed
// command errors and shutdown signal plumbing.
package cli
