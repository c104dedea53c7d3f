package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// messageKey is the natural identity of a message row.
type messageKey struct {
	botID     int64
	messageID int64
}

// chatKey is the natural identity of a chat row.
type chatKey struct {
	botID  int64
	chatID int64
}

// MemoryStore implements the Store interface using in-memory maps. It is
// intended for tests; it honors the exact pagination and upsert semantics of
// the SQLite backend.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[messageKey]MessageRecord
	chats    map[chatKey]ChatRecord
	users    map[int64]UserRecord
	sessions map[int64]string
}

// NewMemoryStore creates a new in-memory storage backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[messageKey]MessageRecord),
		chats:    make(map[chatKey]ChatRecord),
		users:    make(map[int64]UserRecord),
		sessions: make(map[int64]string),
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// UpsertMessages inserts or replaces message rows.
func (s *MemoryStore) UpsertMessages(ctx context.Context, records []MessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.messages[messageKey{botID: r.BotID, messageID: r.MessageID}] = r
	}
	return nil
}

// UpsertChats inserts or replaces chat rows.
func (s *MemoryStore) UpsertChats(ctx context.Context, records []ChatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.chats[chatKey{botID: r.BotID, chatID: r.ID}] = r
	}
	return nil
}

// UpsertUsers inserts or replaces user rows.
func (s *MemoryStore) UpsertUsers(ctx context.Context, records []UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.users[r.ID] = r
	}
	return nil
}

// GetMessage returns the message with the given id for the bot.
func (s *MemoryStore) GetMessage(ctx context.Context, botID, messageID int64) (*MessageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.messages[messageKey{botID: botID, messageID: messageID}]
	if !ok {
		return nil, ErrNotFound
	}
	record := r
	return &record, nil
}

// GetMessages returns serialized message payloads for the page window,
// newest first.
func (s *MemoryStore) GetMessages(ctx context.Context, botID int64, page MessagePage) ([]json.RawMessage, error) {
	page = page.normalized()

	s.mu.RLock()
	var matched []MessageRecord
	for _, r := range s.messages {
		if r.BotID == botID && r.ChatID == page.ChatID &&
			r.MessageID > page.After && r.MessageID < page.Before {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].MessageID > matched[j].MessageID
	})
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}

	payloads := make([]json.RawMessage, 0, len(matched))
	for _, r := range matched {
		payloads = append(payloads, json.RawMessage(r.Payload))
	}
	return payloads, nil
}

// GetChats returns serialized chat payloads for the page window, highest id
// first.
func (s *MemoryStore) GetChats(ctx context.Context, botID int64, page ChatPage) ([]json.RawMessage, error) {
	page = page.normalized()

	s.mu.RLock()
	var matched []ChatRecord
	for _, r := range s.chats {
		if r.BotID != botID || r.ID <= page.After || r.ID >= page.Before {
			continue
		}
		if page.Type != "" && r.Type != page.Type {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}

	payloads := make([]json.RawMessage, 0, len(matched))
	for _, r := range matched {
		payloads = append(payloads, json.RawMessage(r.Payload))
	}
	return payloads, nil
}

// GetUser returns the user with the given global id.
func (s *MemoryStore) GetUser(ctx context.Context, userID int64) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	record := r
	return &record, nil
}

// GetSession returns the stored protocol session credential for the bot.
func (s *MemoryStore) GetSession(ctx context.Context, botID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[botID]
	if !ok {
		return "", ErrNotFound
	}
	return session, nil
}

// PutSession stores the protocol session credential for the bot.
func (s *MemoryStore) PutSession(ctx context.Context, botID int64, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[botID] = session
	return nil
}

// Maintain is a no-op for the in-memory backend.
func (s *MemoryStore) Maintain(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
