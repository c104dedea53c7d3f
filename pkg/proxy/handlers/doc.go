// Package handlers implements the proxy's HTTP surface.
//
// Every bot-method call arrives as /bot{token}/{method}. The Handler
// validates the token against upstream, then either serves the method
// locally from the cache store (getMessage, getMessages, getChats,
// getUser), answers a fixed 501 for webhook management, intercepts opted-in
// send calls into the big-upload path, or forwards the call upstream
// verbatim and relays the response byte-exact while the recorder mines it
// in the background.
package handlers
