package upstream

import (
	"fmt"
	"strconv"
	"strings"
)

// APIError is an error response reported by the upstream Bot API. Code is the
// upstream HTTP status; Description is the human-readable text relayed to the
// caller.
type APIError struct {
	Code        int
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Description)
}

// ParseBotID derives the bot identity from a bot token. The identity is the
// numeric prefix of the token before its first colon ("123456:ABC-DEF" ->
// 123456).
func ParseBotID(token string) (int64, error) {
	prefix, _, _ := strings.Cut(token, ":")
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bot token: no numeric prefix")
	}
	return id, nil
}
