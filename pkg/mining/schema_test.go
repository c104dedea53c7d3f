package mining

import "testing"

func mustDecode(t *testing.T, body string) Value {
	t.Helper()
	v, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return v
}

func TestValidate_User(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{
			name:   "minimal",
			body:   `{"id": 1, "is_bot": false, "first_name": "A"}`,
			wantOK: true,
		},
		{
			name:   "full",
			body:   `{"id": 1, "is_bot": true, "first_name": "A", "last_name": "B", "username": "ab", "language_code": "en"}`,
			wantOK: true,
		},
		{
			name:   "missing id",
			body:   `{"is_bot": false, "first_name": "A"}`,
			wantOK: false,
		},
		{
			name:   "missing is_bot",
			body:   `{"id": 1, "first_name": "A"}`,
			wantOK: false,
		},
		{
			name:   "null required field counts as absent",
			body:   `{"id": 1, "is_bot": null, "first_name": "A"}`,
			wantOK: false,
		},
		{
			name:   "id is a string",
			body:   `{"id": "1", "is_bot": false, "first_name": "A"}`,
			wantOK: false,
		},
		{
			name:   "id is a float",
			body:   `{"id": 1.5, "is_bot": false, "first_name": "A"}`,
			wantOK: false,
		},
		{
			name:   "unknown fields ignored",
			body:   `{"id": 1, "is_bot": false, "first_name": "A", "whatever": [1, 2]}`,
			wantOK: true,
		},
		{
			name:   "wrong shape on optional field",
			body:   `{"id": 1, "is_bot": false, "first_name": "A", "username": 42}`,
			wantOK: false,
		},
		{
			name:   "not an object",
			body:   `[1, 2]`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Validate(mustDecode(t, tt.body), KindUser)
			if ok != tt.wantOK {
				t.Errorf("got ok=%v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestValidate_Chat(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{
			name:   "minimal",
			body:   `{"id": -100123, "type": "supergroup"}`,
			wantOK: true,
		},
		{
			name:   "missing type",
			body:   `{"id": 1}`,
			wantOK: false,
		},
		{
			name:   "pinned message validated as message",
			body:   `{"id": 1, "type": "group", "pinned_message": {"message_id": 9, "chat": {"id": 1, "type": "group"}, "date": 0}}`,
			wantOK: true,
		},
		{
			name:   "malformed pinned message rejects the chat",
			body:   `{"id": 1, "type": "group", "pinned_message": {"text": "no required fields"}}`,
			wantOK: false,
		},
		{
			name:   "active_usernames must be strings",
			body:   `{"id": 1, "type": "channel", "active_usernames": ["a", 2]}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Validate(mustDecode(t, tt.body), KindChat)
			if ok != tt.wantOK {
				t.Errorf("got ok=%v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestValidate_Message(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{
			name:   "minimal",
			body:   `{"message_id": 1, "chat": {"id": 2, "type": "private"}, "date": 3}`,
			wantOK: true,
		},
		{
			name:   "missing chat",
			body:   `{"message_id": 1, "date": 3}`,
			wantOK: false,
		},
		{
			name:   "missing date",
			body:   `{"message_id": 1, "chat": {"id": 2, "type": "private"}}`,
			wantOK: false,
		},
		{
			name:   "invalid nested chat",
			body:   `{"message_id": 1, "chat": {"id": 2}, "date": 3}`,
			wantOK: false,
		},
		{
			name:   "new_chat_members validated as users",
			body:   `{"message_id": 1, "chat": {"id": 2, "type": "group"}, "date": 3, "new_chat_members": [{"id": 4, "is_bot": false, "first_name": "C"}]}`,
			wantOK: true,
		},
		{
			name:   "malformed member rejects the message",
			body:   `{"message_id": 1, "chat": {"id": 2, "type": "group"}, "date": 3, "new_chat_members": [{"id": 4}]}`,
			wantOK: false,
		},
		{
			name:   "photo must be a list of objects",
			body:   `{"message_id": 1, "chat": {"id": 2, "type": "private"}, "date": 3, "photo": ["small.jpg"]}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Validate(mustDecode(t, tt.body), KindMessage)
			if ok != tt.wantOK {
				t.Errorf("got ok=%v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestValidate_NormalizedCopyDropsUnknownFields(t *testing.T) {
	v := mustDecode(t, `{"id": 1, "is_bot": false, "first_name": "A", "extra": true}`)

	normalized, ok := Validate(v, KindUser)
	if !ok {
		t.Fatal("expected user to validate")
	}
	if _, present := normalized.Get("extra"); present {
		t.Error("normalized copy kept an unrecognized field")
	}
	if _, present := normalized.Get("id"); !present {
		t.Error("normalized copy dropped a recognized field")
	}
}
