package cache

import (
	"context"
	"encoding/json"
	"errors"
	"math"
)

// ErrNotFound is returned by single-entity lookups when no row matches.
var ErrNotFound = errors.New("cache: record not found")

// Pagination bounds shared by every backend.
const (
	// MaxPageLimit is the upper clamp for page limits.
	MaxPageLimit = 100
	// MinPageLimit is the lower clamp for page limits.
	MinPageLimit = 1
)

// chatTypes is the fixed Chat type enum. An empty string means "no filter".
var chatTypes = map[string]bool{
	"":           true,
	"private":    true,
	"group":      true,
	"supergroup": true,
	"channel":    true,
}

// MessageRecord is a cached message row. Payload holds the full serialized
// message JSON, the canonical representation returned to clients.
type MessageRecord struct {
	MessageID int64
	BotID     int64
	ChatID    int64
	ThreadID  *int64
	ReplyToID *int64
	FromPeer  *int64
	Payload   []byte
}

// ChatRecord is a cached chat row. ID is the chat's natural identifier, so
// two different bots may each hold a row with the same ID.
type ChatRecord struct {
	ID      int64
	BotID   int64
	Type    string
	Payload []byte
}

// UserRecord is a cached user row. Users are global, not bot-scoped.
type UserRecord struct {
	ID        int64
	Username  *string
	FirstName string
	LastName  *string
	Payload   []byte
}

// MessagePage selects a window of messages within one chat. The window is
// exclusive on both ends: after < message_id < before.
type MessagePage struct {
	ChatID int64
	After  int64
	Before int64
	Limit  int
}

// DefaultMessagePage returns the effectively unbounded window for chatID.
func DefaultMessagePage(chatID int64) MessagePage {
	return MessagePage{
		ChatID: chatID,
		After:  0,
		Before: math.MaxInt64,
		Limit:  MaxPageLimit,
	}
}

// normalized clamps the limit into [MinPageLimit, MaxPageLimit]. Out-of-range
// values are silently adjusted, never rejected.
func (p MessagePage) normalized() MessagePage {
	p.Limit = clampLimit(p.Limit)
	return p
}

// ChatPage selects a window of chats by chat id, optionally filtered to one
// chat type.
type ChatPage struct {
	After  int64
	Before int64
	Limit  int
	Type   string
}

// DefaultChatPage returns the effectively unbounded window. Chat ids may be
// negative, so the lower bound is the minimum signed 64-bit value.
func DefaultChatPage() ChatPage {
	return ChatPage{
		After:  math.MinInt64,
		Before: math.MaxInt64,
		Limit:  MaxPageLimit,
	}
}

// normalized clamps the limit and silently resets unknown type values to ""
// (no filter).
func (p ChatPage) normalized() ChatPage {
	p.Limit = clampLimit(p.Limit)
	if !chatTypes[p.Type] {
		p.Type = ""
	}
	return p
}

func clampLimit(limit int) int {
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	if limit < MinPageLimit {
		return MinPageLimit
	}
	return limit
}

// Store is the repository interface over the durable entity cache.
// Implementations must make every upsert an idempotent insert-or-update on
// the record's natural identity.
type Store interface {
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// UpsertMessages inserts or replaces message rows keyed by
	// (message_id, bot_id).
	UpsertMessages(ctx context.Context, records []MessageRecord) error

	// UpsertChats inserts or replaces chat rows keyed by (id, bot_id).
	UpsertChats(ctx context.Context, records []ChatRecord) error

	// UpsertUsers inserts or replaces user rows keyed by id.
	UpsertUsers(ctx context.Context, records []UserRecord) error

	// GetMessage returns the message with the given id for the bot, or
	// ErrNotFound.
	GetMessage(ctx context.Context, botID, messageID int64) (*MessageRecord, error)

	// GetMessages returns the serialized payloads of messages in the page
	// window, ordered by message_id descending.
	GetMessages(ctx context.Context, botID int64, page MessagePage) ([]json.RawMessage, error)

	// GetChats returns the serialized payloads of chats in the page window,
	// ordered by chat id descending.
	GetChats(ctx context.Context, botID int64, page ChatPage) ([]json.RawMessage, error)

	// GetUser returns the user with the given id, or ErrNotFound. Users are
	// global; there is no bot scoping.
	GetUser(ctx context.Context, userID int64) (*UserRecord, error)

	// GetSession returns the stored protocol session credential for the bot,
	// or ErrNotFound.
	GetSession(ctx context.Context, botID int64) (string, error)

	// PutSession stores the protocol session credential for the bot,
	// replacing any previous one.
	PutSession(ctx context.Context, botID int64, session string) error

	// Maintain runs backend housekeeping (compaction, statistics). It never
	// removes cached entities.
	Maintain(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
