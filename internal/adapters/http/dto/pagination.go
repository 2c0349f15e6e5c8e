package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ErrInvalidCursor is returned for cursors this service did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// PageRequest is the query of a keyset-paged list.
type PageRequest struct {
	// Cursor is the NextCursor of the previous page; empty for the first.
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// PageSize returns Limit clamped to [1, MaxPageSize], DefaultPageSize when unset.
func (p *PageRequest) PageSize() int {
	switch {
	case p.Limit <= 0:
		return DefaultPageSize
	case p.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return p.Limit
	}
}

// Position decodes the cursor. The zero Keyset means the first page.
func (p *PageRequest) Position() (Keyset, error) {
	if p.Cursor == "" {
		return Keyset{}, nil
	}

	return DecodeKeyset(p.Cursor)
}

// Keyset is the position after the last row served, in (created_at, id)
// descending order.
type Keyset struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// IsZero reports whether k is the start of the list.
func (k Keyset) IsZero() bool {
	return k.ID == "" && k.CreatedAt.IsZero()
}

// Encode renders k as an opaque URL-safe cursor.
func (k Keyset) Encode() string {
	raw, _ := json.Marshal(k) //nolint:errchkjson // time and string always encode

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeKeyset parses a cursor produced by Keyset.Encode.
func DecodeKeyset(cursor string) (Keyset, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return Keyset{}, ErrInvalidCursor
	}

	var k Keyset
	if err := json.Unmarshal(raw, &k); err != nil || k.ID == "" || k.CreatedAt.IsZero() {
		return Keyset{}, ErrInvalidCursor
	}

	return k, nil
}

// Page is one page of a list.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// NewPage builds a page from up to limit+1 fetched items; the extra item
// only signals that another page exists.
func NewPage[T any](items []T, limit int, position func(T) Keyset) Page[T] {
	page := Page[T]{Items: items, HasMore: len(items) > limit}
	if !page.HasMore {
		return page
	}

	page.Items = items[:limit]
	if limit > 0 && position != nil {
		page.NextCursor = position(page.Items[limit-1]).Encode()
	}

	return page
}
