package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// EncodeToken creates a base64 encoded cursor from a creation time and an entity ID.
func EncodeToken(createdAt time.Time, id string) string {
	return EncodeMultiFieldToken(createdAt.UTC().Format(timeFormat), id)
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, "", err
	}
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}
	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return createdAt, parts[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// NormalizeLimit clamps a requested page size to [1, MaxLimit], using
// DefaultLimit for non-positive values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Page slices items, which must already be ordered newest first by
// (createdAt desc, id desc), into one page after the cursor. It returns the
// page and the token for the following page, or nil when there is none.
func Page[T any](items []T, limit int, nextToken *string, key func(T) (time.Time, string)) ([]T, *string, error) {
	limit = NormalizeLimit(limit)

	start := 0
	if nextToken != nil && *nextToken != "" {
		afterTime, afterID, err := DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		start = len(items)
		for i, item := range items {
			at, id := key(item)
			if at.Before(afterTime) || (at.Equal(afterTime) && id < afterID) {
				start = i
				break
			}
		}
	}

	end := start + limit
	if end >= len(items) {
		return items[start:], nil, nil
	}
	page := items[start:end]
	at, id := key(page[len(page)-1])
	token := EncodeToken(at, id)
	return page, &token, nil
}
