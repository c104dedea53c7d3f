package handlers

import (
	"io"
	"net/http"
	"time"

	"mirrorbot-hq/tgmirror/pkg/proxy"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

// forward relays one bot-method call upstream. The token gate runs first,
// then opted-in send calls divert into the big-upload path; everything
// else goes out over plain HTTP and comes back byte-exact, with mining as a
// read-only side channel.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, token, method string) int {
	if err := h.upstream.CheckToken(r.Context(), token); err != nil {
		return h.fail(w, err)
	}
	botID, err := upstream.ParseBotID(token)
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	}

	if h.interceptBigUpload(method, r) {
		return h.bigUpload(w, r, token, botID, method)
	}

	var body []byte
	if r.Body != nil {
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return h.fail(w, err)
		}
	}

	start := time.Now()
	resp, err := h.upstream.Call(
		r.Context(),
		token,
		method,
		r.Method,
		r.URL.Query(),
		body,
		proxy.SanitizeRequestHeaders(r.Header),
	)
	if err != nil {
		// Transport failure stays local; the caller sees a 500 with the
		// error text, never an unhandled exception.
		return h.fail(w, err)
	}
	if h.collector != nil {
		h.collector.RecordUpstreamDuration(method, time.Since(start).Seconds())
	}

	h.recorder.Observe(botID, resp.Body)

	header := w.Header()
	for key, values := range proxy.SanitizeResponseHeaders(resp.Header) {
		for _, v := range values {
			header.Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		h.logger.Debug("client went away during relay", "method", method, "error", err)
	}

	return resp.StatusCode
}
