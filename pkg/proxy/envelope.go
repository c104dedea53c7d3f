package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"mirrorbot-hq/tgmirror/pkg/upload"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

// Envelope is the uniform Bot API response wrapper: {ok: true, result: ...}
// on success, {ok: false, error_code, description} on failure.
type Envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// NullResult is the literal JSON null result, used for found-or-null lookups.
var NullResult = json.RawMessage("null")

// WriteResult writes a success envelope with HTTP 200.
func WriteResult(w http.ResponseWriter, result json.RawMessage) {
	writeJSON(w, http.StatusOK, Envelope{OK: true, Result: result})
}

// WriteError writes an error envelope whose HTTP status mirrors code.
func WriteError(w http.ResponseWriter, code int, description string) {
	WriteErrorStatus(w, code, code, description)
}

// WriteErrorStatus writes an error envelope with an explicit HTTP status,
// for the cases where the status and the body's error_code differ (the
// message-not-found response carries error_code 400 with HTTP 404).
func WriteErrorStatus(w http.ResponseWriter, status, code int, description string) {
	writeJSON(w, status, Envelope{OK: false, ErrorCode: code, Description: description})
}

// WriteFailure maps an error from the gate, the upstream client or the
// big-upload collaborator onto the envelope. Upstream API errors propagate
// their status and description verbatim; upload failures carry their own
// codes; anything else is a local 500 with the error text embedded.
func WriteFailure(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.Code, apiErr.Description)
		return
	}

	var upErr *upload.UploadError
	if errors.As(err, &upErr) {
		WriteError(w, upErr.Code, upErr.Message)
		return
	}

	WriteError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
