package mining

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Value is a decoded JSON value. It is one of:
//
//	Object      JSON object, member order preserved
//	Array       JSON array
//	string      JSON string
//	json.Number JSON number, exact textual form
//	bool        JSON true/false
//	nil         JSON null
//
// The standard map[string]interface{} decoding is unsuitable here: map
// iteration order is random, which would destroy the document-order guarantee
// of mining results, and float64 decoding corrupts Telegram identifiers above
// 2^53.
type Value interface{}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with member order preserved.
type Object []Member

// Array is a JSON array.
type Array []Value

// Get returns the value for key. When the document carries duplicate keys the
// last one wins, matching encoding/json.
func (o Object) Get(key string) (Value, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Int returns the value for key as an int64. The second result is false when
// the key is absent, not a number, or not an integral value that fits in a
// signed 64-bit integer.
func (o Object) Int(key string) (int64, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	return asInt64(v)
}

// asInt64 converts a Value to int64. Floats with a fractional part, numeric
// strings and out-of-range numbers are rejected.
func asInt64(v Value) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Str returns the value for key as a string.
func (o Object) Str(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Obj returns the value for key as a nested Object.
func (o Object) Obj(key string) (Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(Object)
	return nested, ok
}

// MarshalJSON encodes the object with its original member order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses data into a Value. Numbers are kept as json.Number and object
// member order is preserved. Nesting is bounded at DefaultMaxDepth; use
// DecodeDepth for a caller-chosen bound.
func Decode(data []byte) (Value, error) {
	return DecodeDepth(data, DefaultMaxDepth)
}

// DecodeDepth parses data into a Value, rejecting documents whose containers
// nest deeper than maxDepth levels. The decoder recurses once per nesting
// level, so the bound must hold during decoding, not after it. A non-positive
// maxDepth falls back to DefaultMaxDepth.
func DecodeDepth(data []byte, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, maxDepth)
	if err != nil {
		return nil, err
	}

	// Reject documents with trailing content after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}

	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth <= 0 {
			return nil, fmt.Errorf("JSON nested too deeply")
		}
		switch t {
		case '{':
			return decodeObject(dec, depth-1)
		case '[':
			return decodeArray(dec, depth-1)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return t, nil
	case json.Number:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder, depth int) (Object, error) {
	obj := Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: val})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (Array, error) {
	arr := Array{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
