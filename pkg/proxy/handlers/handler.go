package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/proxy"
	"mirrorbot-hq/tgmirror/pkg/recorder"
	"mirrorbot-hq/tgmirror/pkg/telemetry/metrics"
	"mirrorbot-hq/tgmirror/pkg/upload"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

// Handler serves every /bot{token}/{method} call. All collaborators are
// required except uploader and collector, which may be nil.
type Handler struct {
	upstream  *upstream.Client
	store     cache.Store
	recorder  *recorder.Recorder
	uploader  upload.Uploader
	collector *metrics.Collector
	logger    *slog.Logger
}

// New creates a Handler. uploader may be nil, which disables the big-upload
// path; collector may be nil, which disables metrics.
func New(client *upstream.Client, store cache.Store, rec *recorder.Recorder, uploader upload.Uploader, collector *metrics.Collector) *Handler {
	return &Handler{
		upstream:  client,
		store:     store,
		recorder:  rec,
		uploader:  uploader,
		collector: collector,
		logger:    slog.Default().With("component", "proxy"),
	}
}

// Register mounts the bot-method route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/{bot}/{method}", h.handleMethod)
}

// handleMethod is the single entry point for bot-method calls. It peels the
// token out of the path, dispatches local methods and webhook stubs, and
// forwards everything else upstream.
func (h *Handler) handleMethod(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bot := r.PathValue("bot")
	token, ok := strings.CutPrefix(bot, "bot")
	if !ok || token == "" {
		proxy.WriteError(w, http.StatusNotFound, "Not Found")
		return
	}
	method := r.PathValue("method")

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		proxy.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	switch method {
	case "getMessage":
		h.observe(method, "local", h.getMessage(w, r, token), start)
	case "getMessages":
		h.observe(method, "local", h.getMessages(w, r, token), start)
	case "getChats":
		h.observe(method, "local", h.getChats(w, r, token), start)
	case "getUser":
		h.observe(method, "local", h.getUser(w, r, token), start)
	case "setWebhook", "deleteWebhook", "getWebhookInfo":
		proxy.WriteError(w, http.StatusNotImplemented, "This method is not implemented yet.")
		h.observe(method, "local", http.StatusNotImplemented, start)
	default:
		h.observe(method, "upstream", h.forward(w, r, token, method), start)
	}
}

// observe records request metrics. status is the HTTP status the handler
// reported back.
func (h *Handler) observe(method, source string, status int, start time.Time) {
	if h.collector == nil {
		return
	}
	h.collector.RecordRequest(method, source, strconv.Itoa(status), time.Since(start).Seconds())
}
