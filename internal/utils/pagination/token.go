package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const offsetField = "offset"

// EncodeOffsetToken creates an opaque token pointing at the entry with the given index.
func EncodeOffsetToken(offset int) string {
	return EncodeMultiFieldToken(offsetField, strconv.Itoa(offset))
}

// DecodeOffsetToken parses a token created by EncodeOffsetToken.
func DecodeOffsetToken(token string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != offsetField {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset parse): %q", parts[1])
	}
	return offset, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// Page returns up to limit items starting at the position token points to,
// plus the token of the following page. An empty token starts at the first
// item; a non-positive limit returns everything left. The next token is empty
// on the last page.
func Page[T any](items []T, limit int, token string) ([]T, string, error) {
	offset := 0
	if token != "" {
		var err error
		if offset, err = DecodeOffsetToken(token); err != nil {
			return nil, "", err
		}
	}
	if offset >= len(items) {
		return []T{}, "", nil
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	next := ""
	if end < len(items) {
		next = EncodeOffsetToken(end)
	}
	return items[offset:end], next, nil
}
