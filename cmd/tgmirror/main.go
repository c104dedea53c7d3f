// Tgmirror is a caching reverse proxy for the Telegram Bot API.
//
// It forwards bot-method calls upstream transparently while mining every
// response for message, chat, and user entities, which it persists into a
// local cache. A small set of read methods (getMessage, getMessages,
// getChats, getUser) is then served from that cache without re-querying
// upstream.
//
// Usage:
//
//	# Start the proxy with default configuration
//	tgmirror run
//
//	# Start with a custom configuration file
//	tgmirror run --config /path/to/config.yaml
//
//	# Validate a configuration file without starting
//	tgmirror validate
//
//	# Show version information
//	tgmirror version
package main

func main() {
	Execute()
}
