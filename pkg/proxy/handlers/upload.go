package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode"

	"mirrorbot-hq/tgmirror/pkg/mining"
	"mirrorbot-hq/tgmirror/pkg/proxy"
	"mirrorbot-hq/tgmirror/pkg/upload"
)

// interceptBigUpload reports whether this call should divert into the
// big-upload path: a send* method, an installed uploader, and an explicit
// big_file=1 opt-in from the caller.
func (h *Handler) interceptBigUpload(method string, r *http.Request) bool {
	return strings.HasPrefix(method, "send") &&
		h.uploader != nil &&
		r.URL.Query().Get("big_file") == "1"
}

// bigUpload delegates the whole call to the uploader. The normalized
// message record it returns is upserted synchronously, so the message is
// queryable as soon as the caller sees the response.
func (h *Handler) bigUpload(w http.ResponseWriter, r *http.Request, token string, botID int64, method string) int {
	req, err := upload.ParseMediaRequest(r, mediaField(method))
	if err != nil {
		return h.fail(w, err)
	}

	result, err := h.uploader.Send(r.Context(), token, method, req)
	if err != nil {
		return h.fail(w, err)
	}

	h.recorder.Record(r.Context(), botID, result)

	if r.URL.Query().Get("raw") != "1" {
		result = trimRawMessage(result)
	}

	proxy.WriteResult(w, result)
	return http.StatusOK
}

// mediaField derives the media parameter name from a send method:
// sendDocument -> "document", sendVideoNote -> "video_note".
func mediaField(method string) string {
	suffix := strings.TrimPrefix(method, "send")
	var sb strings.Builder
	for i, r := range suffix {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// trimRawMessage drops the protocol-level raw_message field from an upload
// result, preserving the order of the remaining keys. Callers opt back in
// with raw=1.
func trimRawMessage(result json.RawMessage) json.RawMessage {
	value, err := mining.Decode(result)
	if err != nil {
		return result
	}
	obj, ok := value.(mining.Object)
	if !ok {
		return result
	}

	trimmed := make(mining.Object, 0, len(obj))
	for _, m := range obj {
		if m.Key == "raw_message" {
			continue
		}
		trimmed = append(trimmed, m)
	}

	out, err := trimmed.MarshalJSON()
	if err != nil {
		return result
	}
	return out
}
