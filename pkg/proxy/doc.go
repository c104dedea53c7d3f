// Package proxy holds the pieces shared by every handler on the proxy's
// HTTP surface: the uniform Bot API response envelope, the mapping from
// internal failures onto it, and the request/response header sanitizers
// used when relaying calls upstream.
package proxy
