package proxy

import "net/http"

// requestHeaderAllowlist is the safe set of inbound headers passed through
// to upstream. Everything else is dropped, including any caller-supplied
// authorization material and cookies. Keys are canonical MIME form.
var requestHeaderAllowlist = map[string]bool{
	"User-Agent":   true,
	"Content-Type": true,
	"Accept":       true,
}

// hopByHopHeaders is the fixed set of headers meaningful only for a single
// transport hop, stripped from upstream responses before relaying. Keys are
// canonical MIME form; matching is case-insensitive through canonicalization.
var hopByHopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailers":            true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// SanitizeRequestHeaders returns a copy of h containing only the allow-listed
// headers.
func SanitizeRequestHeaders(h http.Header) http.Header {
	out := http.Header{}
	for key, values := range h {
		if !requestHeaderAllowlist[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}

// SanitizeResponseHeaders returns a copy of h with hop-by-hop headers
// removed.
func SanitizeResponseHeaders(h http.Header) http.Header {
	out := http.Header{}
	for key, values := range h {
		if hopByHopHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}
