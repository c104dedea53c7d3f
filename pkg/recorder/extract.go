package recorder

import (
	"fmt"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/mining"
)

// messageRecord converts a mined message fragment into a cache row. The
// payload is the fragment serialized back out with key order intact.
func messageRecord(botID int64, obj mining.Object) (cache.MessageRecord, error) {
	var rec cache.MessageRecord

	messageID, ok := obj.Int("message_id")
	if !ok {
		return rec, fmt.Errorf("message fragment missing message_id")
	}
	chat, ok := obj.Obj("chat")
	if !ok {
		return rec, fmt.Errorf("message fragment missing chat")
	}
	chatID, ok := chat.Int("id")
	if !ok {
		return rec, fmt.Errorf("message fragment missing chat.id")
	}

	payload, err := obj.MarshalJSON()
	if err != nil {
		return rec, fmt.Errorf("serialize message fragment: %w", err)
	}

	rec = cache.MessageRecord{
		MessageID: messageID,
		BotID:     botID,
		ChatID:    chatID,
		Payload:   payload,
	}

	if threadID, ok := obj.Int("message_thread_id"); ok {
		rec.ThreadID = &threadID
	}
	if reply, ok := obj.Obj("reply_to_message"); ok {
		if replyID, ok := reply.Int("message_id"); ok {
			rec.ReplyToID = &replyID
		}
	}
	if from, ok := obj.Obj("from"); ok {
		if fromID, ok := from.Int("id"); ok {
			rec.FromPeer = &fromID
		}
	}

	return rec, nil
}

// chatRecord converts a mined chat fragment into a cache row.
func chatRecord(botID int64, obj mining.Object) (cache.ChatRecord, error) {
	var rec cache.ChatRecord

	id, ok := obj.Int("id")
	if !ok {
		return rec, fmt.Errorf("chat fragment missing id")
	}

	payload, err := obj.MarshalJSON()
	if err != nil {
		return rec, fmt.Errorf("serialize chat fragment: %w", err)
	}

	rec = cache.ChatRecord{
		ID:      id,
		BotID:   botID,
		Payload: payload,
	}
	if typ, ok := obj.Str("type"); ok {
		rec.Type = typ
	}

	return rec, nil
}

// userRecord converts a mined user fragment into a cache row.
func userRecord(obj mining.Object) (cache.UserRecord, error) {
	var rec cache.UserRecord

	id, ok := obj.Int("id")
	if !ok {
		return rec, fmt.Errorf("user fragment missing id")
	}

	payload, err := obj.MarshalJSON()
	if err != nil {
		return rec, fmt.Errorf("serialize user fragment: %w", err)
	}

	rec = cache.UserRecord{
		ID:      id,
		Payload: payload,
	}
	if firstName, ok := obj.Str("first_name"); ok {
		rec.FirstName = firstName
	}
	if username, ok := obj.Str("username"); ok {
		rec.Username = &username
	}
	if lastName, ok := obj.Str("last_name"); ok {
		rec.LastName = &lastName
	}

	return rec, nil
}
