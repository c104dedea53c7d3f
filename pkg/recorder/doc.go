// Package recorder turns upstream Bot API responses into cache records.
//
// The Recorder accepts raw response bodies, mines them for message, chat,
// and user entities, and upserts the results into the cache store. Recording
// is asynchronous: Observe enqueues and returns immediately so the proxy can
// relay the upstream response without waiting on storage. Failures are
// logged and counted, never surfaced to the caller; a response that cannot
// be mined is simply not mirrored.
package recorder
