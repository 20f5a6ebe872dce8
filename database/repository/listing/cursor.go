package listingRepo

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Page tokens are opaque to callers: a base64 wrapping of the skip offset.
// An empty token means "start from the beginning".

// EncodePageToken builds the continuation token for the given offset.
func EncodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

// DecodePageToken recovers the skip offset from a continuation token.
func DecodePageToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("malformed page token: %w", err)
	}
	s := string(raw)
	if !strings.HasPrefix(s, "o:") {
		return 0, fmt.Errorf("malformed page token")
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(s, "o:"))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("malformed page token")
	}
	return offset, nil
}
