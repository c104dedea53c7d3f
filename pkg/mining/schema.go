package mining

// Kind identifies one of the known entity schemas.
type Kind string

const (
	// KindMessage is the Telegram Message schema.
	KindMessage Kind = "message"
	// KindChat is the Telegram Chat schema.
	KindChat Kind = "chat"
	// KindUser is the Telegram User schema.
	KindUser Kind = "user"
)

// AllKinds lists every known schema in mining priority order.
var AllKinds = []Kind{KindMessage, KindChat, KindUser}

// fieldType is the expected JSON shape of a schema field.
type fieldType int

const (
	fieldInt fieldType = iota
	fieldBool
	fieldString
	fieldObject     // any JSON object
	fieldObjectList // array of JSON objects
	fieldStringList // array of strings
	fieldSchema     // object matching the referenced schema
	fieldSchemaList // array of objects each matching the referenced schema
)

// field describes one recognized field of a schema. Fields not listed here
// are ignored by validation, never rejected.
type field struct {
	name     string
	typ      fieldType
	ref      Kind // referenced schema for fieldSchema/fieldSchemaList
	required bool
}

// schemaFields holds the recognized fields per schema. The field sets mirror
// the Bot API object definitions: a handful of typed scalars plus nested
// entity references; deeply structured media payloads are accepted as opaque
// objects.
var schemaFields = map[Kind][]field{
	KindUser: {
		{name: "id", typ: fieldInt, required: true},
		{name: "is_bot", typ: fieldBool, required: true},
		{name: "first_name", typ: fieldString, required: true},
		{name: "last_name", typ: fieldString},
		{name: "username", typ: fieldString},
		{name: "language_code", typ: fieldString},
		{name: "is_premium", typ: fieldBool},
		{name: "added_to_attachment_menu", typ: fieldBool},
		{name: "can_join_groups", typ: fieldBool},
		{name: "can_read_all_group_messages", typ: fieldBool},
		{name: "supports_inline_queries", typ: fieldBool},
	},
	KindChat: {
		{name: "id", typ: fieldInt, required: true},
		{name: "type", typ: fieldString, required: true},
		{name: "title", typ: fieldString},
		{name: "username", typ: fieldString},
		{name: "first_name", typ: fieldString},
		{name: "last_name", typ: fieldString},
		{name: "is_forum", typ: fieldBool},
		{name: "photo", typ: fieldObject},
		{name: "active_usernames", typ: fieldStringList},
		{name: "emoji_status_custom_emoji_id", typ: fieldString},
		{name: "bio", typ: fieldString},
		{name: "has_private_forwards", typ: fieldBool},
		{name: "has_restricted_voice_and_video_messages", typ: fieldBool},
		{name: "join_to_send_messages", typ: fieldBool},
		{name: "join_by_request", typ: fieldBool},
		{name: "description", typ: fieldString},
		{name: "invite_link", typ: fieldString},
		{name: "pinned_message", typ: fieldSchema, ref: KindMessage},
		{name: "permissions", typ: fieldObject},
		{name: "slow_mode_delay", typ: fieldInt},
		{name: "message_auto_delete_time", typ: fieldInt},
		{name: "has_aggressive_anti_spam_enabled", typ: fieldBool},
		{name: "has_hidden_members", typ: fieldBool},
		{name: "has_protected_content", typ: fieldBool},
		{name: "sticker_set_name", typ: fieldString},
		{name: "can_set_sticker_set", typ: fieldBool},
		{name: "linked_chat_id", typ: fieldInt},
		{name: "location", typ: fieldObject},
	},
	KindMessage: {
		{name: "message_id", typ: fieldInt, required: true},
		{name: "date", typ: fieldInt, required: true},
		{name: "chat", typ: fieldSchema, ref: KindChat, required: true},
		{name: "from", typ: fieldSchema, ref: KindUser},
		{name: "message_thread_id", typ: fieldInt},
		{name: "sender_chat", typ: fieldSchema, ref: KindChat},
		{name: "forward_from", typ: fieldSchema, ref: KindUser},
		{name: "forward_from_chat", typ: fieldSchema, ref: KindChat},
		{name: "forward_from_message_id", typ: fieldInt},
		{name: "forward_signature", typ: fieldString},
		{name: "forward_sender_name", typ: fieldString},
		{name: "forward_date", typ: fieldInt},
		{name: "is_topic_message", typ: fieldBool},
		{name: "is_automatic_forward", typ: fieldBool},
		{name: "reply_to_message", typ: fieldSchema, ref: KindMessage},
		{name: "via_bot", typ: fieldSchema, ref: KindUser},
		{name: "edit_date", typ: fieldInt},
		{name: "has_protected_content", typ: fieldBool},
		{name: "media_group_id", typ: fieldString},
		{name: "author_signature", typ: fieldString},
		{name: "text", typ: fieldString},
		{name: "entities", typ: fieldObjectList},
		{name: "animation", typ: fieldObject},
		{name: "audio", typ: fieldObject},
		{name: "document", typ: fieldObject},
		{name: "photo", typ: fieldObjectList},
		{name: "sticker", typ: fieldObject},
		{name: "video", typ: fieldObject},
		{name: "video_note", typ: fieldObject},
		{name: "voice", typ: fieldObject},
		{name: "caption", typ: fieldString},
		{name: "caption_entities", typ: fieldObjectList},
		{name: "has_media_spoiler", typ: fieldBool},
		{name: "contact", typ: fieldObject},
		{name: "dice", typ: fieldObject},
		{name: "game", typ: fieldObject},
		{name: "poll", typ: fieldObject},
		{name: "venue", typ: fieldObject},
		{name: "location", typ: fieldObject},
		{name: "new_chat_members", typ: fieldSchemaList, ref: KindUser},
		{name: "left_chat_member", typ: fieldSchema, ref: KindUser},
		{name: "new_chat_title", typ: fieldString},
		{name: "new_chat_photo", typ: fieldObjectList},
		{name: "delete_chat_photo", typ: fieldBool},
		{name: "group_chat_created", typ: fieldBool},
		{name: "supergroup_chat_created", typ: fieldBool},
		{name: "channel_chat_created", typ: fieldBool},
		{name: "message_auto_delete_timer_changed", typ: fieldObject},
		{name: "migrate_to_chat_id", typ: fieldInt},
		{name: "migrate_from_chat_id", typ: fieldInt},
		{name: "pinned_message", typ: fieldSchema, ref: KindMessage},
		{name: "invoice", typ: fieldObject},
		{name: "successful_payment", typ: fieldObject},
		{name: "user_shared", typ: fieldObject},
		{name: "chat_shared", typ: fieldObject},
		{name: "connected_website", typ: fieldString},
		{name: "write_access_allowed", typ: fieldObject},
		{name: "passport_data", typ: fieldObject},
		{name: "proximity_alert_triggered", typ: fieldObject},
		{name: "forum_topic_created", typ: fieldObject},
		{name: "forum_topic_edited", typ: fieldObject},
		{name: "forum_topic_closed", typ: fieldObject},
		{name: "forum_topic_reopened", typ: fieldObject},
		{name: "general_forum_topic_hidden", typ: fieldObject},
		{name: "general_forum_topic_unhidden", typ: fieldObject},
		{name: "video_chat_scheduled", typ: fieldObject},
		{name: "video_chat_started", typ: fieldObject},
		{name: "video_chat_ended", typ: fieldObject},
		{name: "video_chat_participants_invited", typ: fieldObject},
		{name: "web_app_data", typ: fieldObject},
		{name: "reply_markup", typ: fieldObject},
	},
}

// Validate checks v against the schema and returns a normalized copy holding
// only the recognized fields (nested entity references normalized the same
// way). The second result is false when v is not an object, a required field
// is missing, or a recognized field has the wrong shape. A false result is a
// classification outcome, not an error.
func Validate(v Value, kind Kind) (Object, bool) {
	return validate(v, kind, DefaultMaxDepth)
}

func validate(v Value, kind Kind, depth int) (Object, bool) {
	if depth <= 0 {
		return nil, false
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, false
	}

	var normalized Object
	for _, f := range schemaFields[kind] {
		fv, present := obj.Get(f.name)
		if !present || fv == nil {
			// JSON null counts as absent, like an omitted optional field.
			if f.required {
				return nil, false
			}
			continue
		}

		nv, ok := checkField(fv, f, depth)
		if !ok {
			return nil, false
		}
		normalized = append(normalized, Member{Key: f.name, Value: nv})
	}

	return normalized, true
}

// checkField validates a single present field value and returns its
// normalized form.
func checkField(v Value, f field, depth int) (Value, bool) {
	switch f.typ {
	case fieldInt:
		if _, ok := asInt64(v); !ok {
			return nil, false
		}
		return v, true
	case fieldBool:
		_, ok := v.(bool)
		return v, ok
	case fieldString:
		_, ok := v.(string)
		return v, ok
	case fieldObject:
		_, ok := v.(Object)
		return v, ok
	case fieldObjectList:
		arr, ok := v.(Array)
		if !ok {
			return nil, false
		}
		for _, item := range arr {
			if _, ok := item.(Object); !ok {
				return nil, false
			}
		}
		return v, true
	case fieldStringList:
		arr, ok := v.(Array)
		if !ok {
			return nil, false
		}
		for _, item := range arr {
			if _, ok := item.(string); !ok {
				return nil, false
			}
		}
		return v, true
	case fieldSchema:
		return validate(v, f.ref, depth-1)
	case fieldSchemaList:
		arr, ok := v.(Array)
		if !ok {
			return nil, false
		}
		normalized := make(Array, 0, len(arr))
		for _, item := range arr {
			nv, ok := validate(item, f.ref, depth-1)
			if !ok {
				return nil, false
			}
			normalized = append(normalized, nv)
		}
		return normalized, true
	}
	return nil, false
}
