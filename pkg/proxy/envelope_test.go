package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mirrorbot-hq/tgmirror/pkg/upload"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestWriteResult(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResult(rec, json.RawMessage(`{"id":1}`))

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("got Content-Type %q, want application/json", got)
	}

	env := decodeEnvelope(t, rec)
	if !env.OK {
		t.Error("expected ok=true")
	}
	if string(env.Result) != `{"id":1}` {
		t.Errorf("got result %s, want {\"id\":1}", env.Result)
	}
}

func TestWriteResult_Null(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResult(rec, NullResult)

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
	// The literal null must survive; omitempty would drop an empty value.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if string(raw["result"]) != "null" {
		t.Errorf("got result %s, want literal null", raw["result"])
	}
}

func TestWriteErrorStatus_DivergentStatusAndCode(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorStatus(rec, http.StatusNotFound, http.StatusBadRequest, "Bad Request: message not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("got HTTP status %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.OK {
		t.Error("expected ok=false")
	}
	if env.ErrorCode != http.StatusBadRequest {
		t.Errorf("got error_code %d, want 400", env.ErrorCode)
	}
	if env.Description != "Bad Request: message not found" {
		t.Errorf("got description %q", env.Description)
	}
}

func TestWriteFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantDesc   string
	}{
		{
			name:       "upstream api error",
			err:        &upstream.APIError{Code: 401, Description: "Telegram Bot Api server returned an error: Unauthorized"},
			wantStatus: 401,
			wantCode:   401,
			wantDesc:   "Telegram Bot Api server returned an error: Unauthorized",
		},
		{
			name:       "upload error",
			err:        upload.TooLargeError(),
			wantStatus: 413,
			wantCode:   413,
			wantDesc:   "Request Entity Too Large",
		},
		{
			name:       "plain error",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: 500,
			wantCode:   500,
			wantDesc:   "dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteFailure(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.ErrorCode != tt.wantCode {
				t.Errorf("got error_code %d, want %d", env.ErrorCode, tt.wantCode)
			}
			if env.Description != tt.wantDesc {
				t.Errorf("got description %q, want %q", env.Description, tt.wantDesc)
			}
		})
	}
}
