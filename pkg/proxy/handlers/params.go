package handlers

import (
	"fmt"
	"net/url"
	"strconv"
)

// invalidParams is the description for every query parameter failure,
// matching upstream's own wording.
const invalidParams = "Bad Request: invalid parameters"

// requireQueryInt parses a required integer query parameter.
func requireQueryInt(q url.Values, key string) (int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// queryInt parses an optional integer query parameter. The second return
// reports presence; an unparsable present value is an error.
func queryInt(q url.Values, key string) (int64, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, true, nil
}
