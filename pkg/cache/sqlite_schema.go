package cache

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the entity cache schema.
const Schema = `
-- Messages, one row per (message_id, bot_id)
CREATE TABLE IF NOT EXISTS messages (
    message_id INTEGER NOT NULL,
    bot_id INTEGER NOT NULL,
    chat_id INTEGER NOT NULL,
    message_thread_id INTEGER,
    reply_to_message_id INTEGER,
    from_peer INTEGER,
    payload TEXT NOT NULL,
    PRIMARY KEY (message_id, bot_id)
);

-- Chats, one row per (id, bot_id); id is the chat's natural identifier
CREATE TABLE IF NOT EXISTS chats (
    id INTEGER NOT NULL,
    bot_id INTEGER NOT NULL,
    type TEXT NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (id, bot_id)
);

-- Users are global across bots
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    username TEXT,
    first_name TEXT NOT NULL,
    last_name TEXT,
    payload TEXT NOT NULL
);

-- Per-bot protocol session credential for the big-upload path
CREATE TABLE IF NOT EXISTS bot_sessions (
    bot_id INTEGER PRIMARY KEY,
    session_string TEXT NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for the pagination queries
CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(bot_id, chat_id, message_id);
CREATE INDEX IF NOT EXISTS idx_chats_bot ON chats(bot_id, id);
CREATE INDEX IF NOT EXISTS idx_chats_bot_type ON chats(bot_id, type, id);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
