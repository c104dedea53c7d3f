// Package upstream is the outbound HTTP client for the Telegram Bot API.
//
// It issues the forwarded method calls and the per-request token gate check
// (getMe). The client pools connections and applies a configurable timeout,
// but never retries: replaying a send method against the Bot API would
// duplicate its side effects.
package upstream
