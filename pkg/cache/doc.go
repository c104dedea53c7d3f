// Package cache persists entities mined from upstream responses and serves
// the local query methods.
//
// The store is a pure accretive cache: rows are created and updated only as a
// side effect of observing upstream payloads (or a successful big-upload
// call) and are never deleted. Upserts are keyed by natural identity:
// (message_id, bot_id) for messages, (id, bot_id) for chats, the global id
// for users. Writes are last-write-wins with no versioning, so re-observing
// the same entity any number of times is idempotent.
//
// Two backends implement the Store interface: a SQLite backend for
// production and an in-memory backend for tests. Pagination semantics
// (limit clamping to [1,100], exclusive after/before windows, descending id
// order, chat type filter reset for unknown values) live here so every
// backend behaves identically.
package cache
