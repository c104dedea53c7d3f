// Package upload is the boundary to the big-upload collaborator: an
// alternate upload client capable of direct protocol uploads for media
// exceeding the plain Bot API's size limit.
//
// The collaborator itself is an external dependency; this package defines the
// interface the proxy calls into, the structured failure taxonomy (400
// no-media, 413 too-large), the media extraction rules shared by every
// implementation (URL, file-id reference or multipart payload, capped at
// 100 MiB), and the per-bot session credential contract backed by the cache
// store so implementations can skip the protocol handshake on reuse.
package upload
