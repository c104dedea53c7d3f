package mining

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecode_PreservesMemberOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("expected Object, got %T", v)
	}

	want := []string{"z", "a", "m"}
	if len(obj) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(obj))
	}
	for i, key := range want {
		if obj[i].Key != key {
			t.Errorf("member %d: got key %q, want %q", i, obj[i].Key, key)
		}
	}
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{name: "string", input: `"hello"`, want: "hello"},
		{name: "number", input: `42`, want: json.Number("42")},
		{name: "bool", input: `true`, want: true},
		{name: "null", input: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if v != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", v, v, tt.want, tt.want)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "garbage", input: `not json`},
		{name: "truncated object", input: `{"a": 1`},
		{name: "trailing value", input: `{"a": 1} 2`},
		{name: "trailing garbage", input: `{"a": 1} oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestDecodeDepth_Bound(t *testing.T) {
	nested := func(levels int) string {
		return strings.Repeat("[", levels) + strings.Repeat("]", levels)
	}

	if _, err := DecodeDepth([]byte(nested(10)), 10); err != nil {
		t.Fatalf("DecodeDepth failed at the bound: %v", err)
	}
	if _, err := DecodeDepth([]byte(nested(11)), 10); err == nil {
		t.Fatal("expected error past the nesting bound")
	}

	// Objects count toward the bound too.
	deep := strings.Repeat(`{"a":`, 11) + "1" + strings.Repeat("}", 11)
	if _, err := DecodeDepth([]byte(deep), 10); err == nil {
		t.Fatal("expected error for deeply nested objects")
	}
}

func TestDecodeDepth_RejectsPathologicalNesting(t *testing.T) {
	// Far deeper than any bound the decoder could recurse through; the
	// document must be rejected without the stack having grown past the
	// configured level count.
	deep := strings.Repeat("[", 1_000_000) + strings.Repeat("]", 1_000_000)
	if _, err := DecodeDepth([]byte(deep), DefaultMaxDepth); err == nil {
		t.Fatal("expected error for pathological nesting")
	}
}

func TestObject_Get_DuplicateKeys(t *testing.T) {
	v, err := Decode([]byte(`{"id": 1, "id": 2}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	obj := v.(Object)
	id, ok := obj.Int("id")
	if !ok || id != 2 {
		t.Errorf("got id=%d ok=%v, want 2 (last key wins)", id, ok)
	}
}

func TestObject_Int(t *testing.T) {
	v, err := Decode([]byte(`{"ok": 5, "big": 9007199254740993, "neg": -3, "float": 1.5, "str": "5", "bool": true}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	obj := v.(Object)

	tests := []struct {
		key    string
		want   int64
		wantOK bool
	}{
		{key: "ok", want: 5, wantOK: true},
		{key: "big", want: 9007199254740993, wantOK: true},
		{key: "neg", want: -3, wantOK: true},
		{key: "float", wantOK: false},
		{key: "str", wantOK: false},
		{key: "bool", wantOK: false},
		{key: "absent", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := obj.Int(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("got ok=%v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestObject_MarshalJSON_PreservesOrder(t *testing.T) {
	input := `{"message_id":10,"from":{"id":2,"is_bot":true},"chat":{"id":1,"type":"private"},"date":5,"text":"hi \"there\""}`

	v, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip changed the document:\ngot:  %s\nwant: %s", out, input)
	}
}

func TestObject_MarshalJSON_Empty(t *testing.T) {
	out, err := json.Marshal(Object{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("got %s, want {}", out)
	}
}
