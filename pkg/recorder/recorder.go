package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/mining"
	"mirrorbot-hq/tgmirror/pkg/telemetry/metrics"
)

// Config contains configuration for the recorder.
type Config struct {
	// AsyncBuffer is the size of the async job channel. A full channel
	// drops the job rather than blocking the proxy. Default: 1000
	AsyncBuffer int

	// WriteTimeout bounds each store write. Default: 5 seconds
	WriteTimeout time.Duration

	// MaxDepth bounds recursion into response documents.
	// Default: mining.DefaultMaxDepth
	MaxDepth int
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
		MaxDepth:     mining.DefaultMaxDepth,
	}
}

// job is one response body awaiting mining.
type job struct {
	botID int64
	body  []byte
}

// Recorder mines upstream response bodies and upserts the results into the
// cache store. Work happens on a background worker so the proxy never waits
// on storage.
type Recorder struct {
	store     cache.Store
	miner     *mining.Miner
	config    *Config
	collector *metrics.Collector
	logger    *slog.Logger

	jobs      chan job
	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// NewRecorder creates a recorder writing to store. collector may be nil.
func NewRecorder(store cache.Store, collector *metrics.Collector, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = 1000
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = mining.DefaultMaxDepth
	}

	r := &Recorder{
		store:     store,
		miner:     mining.NewMiner(config.MaxDepth),
		config:    config,
		collector: collector,
		logger:    slog.Default().With("component", "recorder"),
		jobs:      make(chan job, config.AsyncBuffer),
		done:      make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("recorder started",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
		"max_depth", config.MaxDepth,
	)

	return r
}

// Observe enqueues an upstream response body for mining and returns
// immediately. body must not be mutated by the caller afterwards. If the
// queue is full the body is dropped; mirroring is best effort.
func (r *Recorder) Observe(botID int64, body []byte) {
	select {
	case r.jobs <- job{botID: botID, body: body}:
	default:
		r.logger.Warn("recorder queue full, dropping response", "bot_id", botID)
		if r.collector != nil {
			r.collector.RecordMiningFailure("queue")
		}
	}
}

// Close drains pending jobs and stops the worker. It is safe to call more
// than once.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

// worker drains the job channel until Close.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			for {
				select {
				case j := <-r.jobs:
					r.process(j)
				default:
					return
				}
			}
		case j := <-r.jobs:
			r.process(j)
		}
	}
}

// process runs one queued job under the configured write timeout.
func (r *Recorder) process(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	r.Record(ctx, j.botID, j.body)
}

// Record mines body synchronously and writes the results. Every failure is
// terminal for this body only: it is logged, counted, and forgotten.
func (r *Recorder) Record(ctx context.Context, botID int64, body []byte) {
	result, err := r.miner.MineBytes(body, mining.AllKinds...)
	if err != nil {
		r.logger.Debug("response body not minable", "bot_id", botID, "error", err)
		if r.collector != nil {
			r.collector.RecordMiningFailure("decode")
		}
		return
	}
	if result.Total() == 0 {
		return
	}

	r.upsert(ctx, botID, result)
}

// upsert converts mined fragments to records and writes them, one batch
// per kind. Fragments that do not convert are skipped individually.
func (r *Recorder) upsert(ctx context.Context, botID int64, result mining.Result) {
	var messages []cache.MessageRecord
	for _, obj := range result[mining.KindMessage] {
		rec, err := messageRecord(botID, obj)
		if err != nil {
			r.logger.Debug("skipping message fragment", "bot_id", botID, "error", err)
			continue
		}
		messages = append(messages, rec)
	}

	var chats []cache.ChatRecord
	for _, obj := range result[mining.KindChat] {
		rec, err := chatRecord(botID, obj)
		if err != nil {
			r.logger.Debug("skipping chat fragment", "bot_id", botID, "error", err)
			continue
		}
		chats = append(chats, rec)
	}

	var users []cache.UserRecord
	for _, obj := range result[mining.KindUser] {
		rec, err := userRecord(obj)
		if err != nil {
			r.logger.Debug("skipping user fragment", "bot_id", botID, "error", err)
			continue
		}
		users = append(users, rec)
	}

	if r.collector != nil {
		r.collector.RecordMined(string(mining.KindMessage), len(result[mining.KindMessage]))
		r.collector.RecordMined(string(mining.KindChat), len(result[mining.KindChat]))
		r.collector.RecordMined(string(mining.KindUser), len(result[mining.KindUser]))
	}

	if len(messages) > 0 {
		if err := r.store.UpsertMessages(ctx, messages); err != nil {
			r.storeFailed(botID, "messages", err)
		} else {
			r.stored(string(mining.KindMessage), len(messages))
		}
	}
	if len(chats) > 0 {
		if err := r.store.UpsertChats(ctx, chats); err != nil {
			r.storeFailed(botID, "chats", err)
		} else {
			r.stored(string(mining.KindChat), len(chats))
		}
	}
	if len(users) > 0 {
		if err := r.store.UpsertUsers(ctx, users); err != nil {
			r.storeFailed(botID, "users", err)
		} else {
			r.stored(string(mining.KindUser), len(users))
		}
	}
}

func (r *Recorder) storeFailed(botID int64, kind string, err error) {
	r.logger.Error("cache upsert failed", "bot_id", botID, "kind", kind, "error", err)
	if r.collector != nil {
		r.collector.RecordMiningFailure("store")
	}
}

func (r *Recorder) stored(kind string, count int) {
	if r.collector != nil {
		r.collector.RecordUpserts(kind, count)
	}
}
