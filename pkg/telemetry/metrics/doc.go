// Package metrics provides Prometheus instrumentation for the mirror proxy.
//
// The Collector owns a private registry and groups metrics by concern:
// request metrics for the HTTP surface (proxied and local calls) and mining
// metrics for the entity extraction pipeline. Handlers and the recorder hold
// a *Collector and record through its typed methods; nothing else touches
// the registry directly.
//
// All metrics live under the "tgmirror" namespace.
package metrics
