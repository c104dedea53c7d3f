package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/cache.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite storage backend. It initializes the
// schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "cache.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite cache initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("cache: enable WAL: %w", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return fmt.Errorf("cache: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("cache: create schema: %w", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("cache: insert schema version: %w", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("cache: get schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("cache: schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertMessages inserts or replaces message rows keyed by
// (message_id, bot_id). The whole batch runs in one transaction.
func (s *SQLiteStore) UpsertMessages(ctx context.Context, records []MessageRecord) error {
	if len(records) == 0 {
		return nil
	}

	const query = `
		INSERT INTO messages (message_id, bot_id, chat_id, message_thread_id, reply_to_message_id, from_peer, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id, bot_id) DO UPDATE SET
			chat_id = excluded.chat_id,
			message_thread_id = excluded.message_thread_id,
			reply_to_message_id = excluded.reply_to_message_id,
			from_peer = excluded.from_peer,
			payload = excluded.payload
	`

	return s.inTx(ctx, "upsert_messages", func(tx *sql.Tx) error {
		for _, r := range records {
			_, err := tx.ExecContext(ctx, query,
				r.MessageID, r.BotID, r.ChatID,
				nullableInt(r.ThreadID), nullableInt(r.ReplyToID), nullableInt(r.FromPeer),
				string(r.Payload),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertChats inserts or replaces chat rows keyed by (id, bot_id).
func (s *SQLiteStore) UpsertChats(ctx context.Context, records []ChatRecord) error {
	if len(records) == 0 {
		return nil
	}

	const query = `
		INSERT INTO chats (id, bot_id, type, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id, bot_id) DO UPDATE SET
			type = excluded.type,
			payload = excluded.payload
	`

	return s.inTx(ctx, "upsert_chats", func(tx *sql.Tx) error {
		for _, r := range records {
			if _, err := tx.ExecContext(ctx, query, r.ID, r.BotID, r.Type, string(r.Payload)); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertUsers inserts or replaces user rows keyed by the global user id.
func (s *SQLiteStore) UpsertUsers(ctx context.Context, records []UserRecord) error {
	if len(records) == 0 {
		return nil
	}

	const query = `
		INSERT INTO users (id, username, first_name, last_name, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			payload = excluded.payload
	`

	return s.inTx(ctx, "upsert_users", func(tx *sql.Tx) error {
		for _, r := range records {
			_, err := tx.ExecContext(ctx, query,
				r.ID, nullableStr(r.Username), r.FirstName, nullableStr(r.LastName), string(r.Payload),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetMessage returns the message with the given id for the bot.
func (s *SQLiteStore) GetMessage(ctx context.Context, botID, messageID int64) (*MessageRecord, error) {
	const query = `
		SELECT message_id, bot_id, chat_id, message_thread_id, reply_to_message_id, from_peer, payload
		FROM messages WHERE bot_id = ? AND message_id = ?
	`

	var r MessageRecord
	var threadID, replyToID, fromPeer sql.NullInt64
	var payload string

	err := s.db.QueryRowContext(ctx, query, botID, messageID).Scan(
		&r.MessageID, &r.BotID, &r.ChatID, &threadID, &replyToID, &fromPeer, &payload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get message: %w", err)
	}

	r.ThreadID = nullInt(threadID)
	r.ReplyToID = nullInt(replyToID)
	r.FromPeer = nullInt(fromPeer)
	r.Payload = []byte(payload)
	return &r, nil
}

// GetMessages returns serialized message payloads for the page window,
// newest first.
func (s *SQLiteStore) GetMessages(ctx context.Context, botID int64, page MessagePage) ([]json.RawMessage, error) {
	page = page.normalized()

	const query = `
		SELECT payload FROM messages
		WHERE bot_id = ? AND chat_id = ? AND message_id > ? AND message_id < ?
		ORDER BY message_id DESC
		LIMIT ?
	`

	return s.queryPayloads(ctx, "get_messages", query,
		botID, page.ChatID, page.After, page.Before, page.Limit)
}

// GetChats returns serialized chat payloads for the page window, highest id
// first.
func (s *SQLiteStore) GetChats(ctx context.Context, botID int64, page ChatPage) ([]json.RawMessage, error) {
	page = page.normalized()

	query := `
		SELECT payload FROM chats
		WHERE bot_id = ? AND id > ? AND id < ?
	`
	args := []interface{}{botID, page.After, page.Before}

	if page.Type != "" {
		query += " AND type = ?"
		args = append(args, page.Type)
	}

	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, page.Limit)

	return s.queryPayloads(ctx, "get_chats", query, args...)
}

// GetUser returns the user with the given global id.
func (s *SQLiteStore) GetUser(ctx context.Context, userID int64) (*UserRecord, error) {
	const query = `
		SELECT id, username, first_name, last_name, payload
		FROM users WHERE id = ?
	`

	var r UserRecord
	var username, lastName sql.NullString
	var payload string

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&r.ID, &username, &r.FirstName, &lastName, &payload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get user: %w", err)
	}

	r.Username = nullStr(username)
	r.LastName = nullStr(lastName)
	r.Payload = []byte(payload)
	return &r, nil
}

// GetSession returns the stored protocol session credential for the bot.
func (s *SQLiteStore) GetSession(ctx context.Context, botID int64) (string, error) {
	var session string
	err := s.db.QueryRowContext(ctx,
		"SELECT session_string FROM bot_sessions WHERE bot_id = ?", botID,
	).Scan(&session)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("cache: get session: %w", err)
	}
	return session, nil
}

// PutSession stores the protocol session credential for the bot.
func (s *SQLiteStore) PutSession(ctx context.Context, botID int64, session string) error {
	const query = `
		INSERT INTO bot_sessions (bot_id, session_string)
		VALUES (?, ?)
		ON CONFLICT(bot_id) DO UPDATE SET session_string = excluded.session_string
	`
	if _, err := s.db.ExecContext(ctx, query, botID, session); err != nil {
		return fmt.Errorf("cache: put session: %w", err)
	}
	return nil
}

// Maintain compacts the database file and refreshes planner statistics. It
// never deletes cached entities.
func (s *SQLiteStore) Maintain(ctx context.Context) error {
	start := time.Now()

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("cache: vacuum: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		return fmt.Errorf("cache: analyze: %w", err)
	}

	s.logger.Info("cache maintenance completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("cache: close: %w", err)
	}
	s.logger.Info("SQLite cache closed")
	return nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *SQLiteStore) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache: %s: begin: %w", op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Warn("rollback failed", "operation", op, "error", rbErr)
		}
		return fmt.Errorf("cache: %s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: %s: commit: %w", op, err)
	}
	return nil
}

// queryPayloads runs a payload-column query and collects the rows.
func (s *SQLiteStore) queryPayloads(ctx context.Context, op, query string, args ...interface{}) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cache: %s: %w", op, err)
	}
	defer rows.Close()

	payloads := []json.RawMessage{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("cache: %s: scan: %w", op, err)
		}
		payloads = append(payloads, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: %s: %w", op, err)
	}

	return payloads, nil
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableStr(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
