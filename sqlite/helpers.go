package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// timeLayout is the stored timestamp format. Timestamps are stored in UTC
// with fixed-width fractions so that lexical order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp. An empty value is the zero time.
func parseTime(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends a LIMIT clause to a query builder if limit > 0.
func appendPagination(query *strings.Builder, args *[]any, limit int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
}

// HashContent returns the hex xxHash of content, or "" for empty content.
func HashContent(content string) string {
	if content == "" {
		return ""
	}
	b := binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
