package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/proxy"
	"mirrorbot-hq/tgmirror/pkg/upload"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

// Local query methods validate their own parameters first, then run the
// token gate, then read from the cache store. A parameter failure never
// reaches upstream.

// getMessage serves a single cached message, or a 404 whose body carries
// upstream's 400-style description.
func (h *Handler) getMessage(w http.ResponseWriter, r *http.Request, token string) int {
	messageID, err := requireQueryInt(r.URL.Query(), "message_id")
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	}

	botID, status := h.gate(w, r, token)
	if status != 0 {
		return status
	}

	rec, err := h.store.GetMessage(r.Context(), botID, messageID)
	if errors.Is(err, cache.ErrNotFound) {
		proxy.WriteErrorStatus(w, http.StatusNotFound, http.StatusBadRequest, "Bad Request: message not found")
		return http.StatusNotFound
	}
	if err != nil {
		return h.fail(w, err)
	}

	proxy.WriteResult(w, rec.Payload)
	return http.StatusOK
}

// getMessages serves a descending page of cached messages for one chat.
func (h *Handler) getMessages(w http.ResponseWriter, r *http.Request, token string) int {
	q := r.URL.Query()

	chatID, err := requireQueryInt(q, "chat_id")
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	}

	page := cache.DefaultMessagePage(chatID)
	if v, ok, err := queryInt(q, "after"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.After = v
	}
	if v, ok, err := queryInt(q, "before"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.Before = v
	}
	if v, ok, err := queryInt(q, "limit"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.Limit = int(v)
	}

	botID, status := h.gate(w, r, token)
	if status != 0 {
		return status
	}

	payloads, err := h.store.GetMessages(r.Context(), botID, page)
	if err != nil {
		return h.fail(w, err)
	}

	return h.writeList(w, payloads)
}

// getChats serves a descending page of cached chats, optionally filtered by
// chat type. Unknown type values silently mean "no filter".
func (h *Handler) getChats(w http.ResponseWriter, r *http.Request, token string) int {
	q := r.URL.Query()

	page := cache.DefaultChatPage()
	if v, ok, err := queryInt(q, "after"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.After = v
	}
	if v, ok, err := queryInt(q, "before"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.Before = v
	}
	if v, ok, err := queryInt(q, "limit"); err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	} else if ok {
		page.Limit = int(v)
	}
	page.Type = q.Get("type")

	botID, status := h.gate(w, r, token)
	if status != 0 {
		return status
	}

	payloads, err := h.store.GetChats(r.Context(), botID, page)
	if err != nil {
		return h.fail(w, err)
	}

	return h.writeList(w, payloads)
}

// getUser serves a cached user, found-or-null: a missing user is a success
// envelope with a null result, not a 404.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request, token string) int {
	userID, err := requireQueryInt(r.URL.Query(), "user_id")
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return http.StatusBadRequest
	}

	if _, status := h.gate(w, r, token); status != 0 {
		return status
	}

	rec, err := h.store.GetUser(r.Context(), userID)
	if errors.Is(err, cache.ErrNotFound) {
		proxy.WriteResult(w, proxy.NullResult)
		return http.StatusOK
	}
	if err != nil {
		return h.fail(w, err)
	}

	proxy.WriteResult(w, rec.Payload)
	return http.StatusOK
}

// gate runs the token gate and derives the bot identity. On failure it
// writes the response and returns its status; on success it returns status
// zero.
func (h *Handler) gate(w http.ResponseWriter, r *http.Request, token string) (int64, int) {
	if err := h.upstream.CheckToken(r.Context(), token); err != nil {
		return 0, h.fail(w, err)
	}
	botID, err := upstream.ParseBotID(token)
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, invalidParams)
		return 0, http.StatusBadRequest
	}
	return botID, 0
}

// writeList writes a success envelope holding an array of payloads. An
// empty page is an empty array, never null.
func (h *Handler) writeList(w http.ResponseWriter, payloads []json.RawMessage) int {
	if payloads == nil {
		payloads = []json.RawMessage{}
	}
	result, err := json.Marshal(payloads)
	if err != nil {
		return h.fail(w, err)
	}
	proxy.WriteResult(w, result)
	return http.StatusOK
}

// fail renders err through the shared failure mapping and reports the HTTP
// status it produced.
func (h *Handler) fail(w http.ResponseWriter, err error) int {
	proxy.WriteFailure(w, err)

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var upErr *upload.UploadError
	if errors.As(err, &upErr) {
		return upErr.Code
	}
	return http.StatusInternalServerError
}
