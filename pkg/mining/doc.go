// Package mining discovers Telegram entity objects embedded in arbitrary
// JSON documents.
//
// The Bot API nests Message, Chat and User objects at unpredictable depths
// inside method responses (a sendMessage result carries a chat, a sender, a
// possible reply_to_message which itself carries another chat, and so on).
// The miner walks the whole response tree and collects every sub-object that
// matches one of the known entity schemas, so the proxy can persist them as
// a side effect of forwarding.
//
// The package has three layers:
//
//   - Value: an explicit JSON representation whose objects preserve member
//     order and whose numbers stay exact (json.Number), so 64-bit Telegram
//     identifiers survive a decode/encode round trip and mining results keep
//     document order.
//   - Schema validation: permissive field-presence and type checks against
//     the User, Chat and Message shapes. A mismatch is a normal outcome,
//     never an error; unknown fields are ignored.
//   - Mine: a depth-bounded, mutation-free depth-first traversal that tests
//     every object node against every schema and records the matching raw
//     fragments in traversal order.
package mining
