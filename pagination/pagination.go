// Package pagination implements cursor pagination over gorm queries. A cursor
// encodes the (created_at, id) position of the row a page starts after, so
// paging stays stable under concurrent inserts.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Cursor struct {
	CreatedAt time.Time `json:"c"`
	ID        string    `json:"i"`
	Backward  bool      `json:"b,omitempty"`
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a token produced by Encode.
func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor: %w", err)
	}
	return c, nil
}

// Page is the response envelope for a cursor-paginated listing.
type Page[T any] struct {
	Items       []T     `json:"items"`
	Path        string  `json:"path"`
	PerPage     int     `json:"per_page"`
	NextCursor  *string `json:"next_cursor"`
	NextPageURL *string `json:"next_page_url"`
	PrevCursor  *string `json:"prev_cursor"`
	PrevPageURL *string `json:"prev_page_url"`
}

// Paginate runs the query as one page of perPage rows starting after token
// (or at the beginning when token is empty). key extracts the (created_at, id)
// position of a row. Ordering is created_at then id, both ascending, so two
// rows created in the same instant still page deterministically.
func Paginate[T any](q *gorm.DB, path string, perPage int, token string, key func(T) (time.Time, string)) (*Page[T], error) {
	if perPage < 1 {
		perPage = 1
	}

	var cursor Cursor
	hasCursor := token != ""
	if hasCursor {
		var err error
		cursor, err = Decode(token)
		if err != nil {
			return nil, err
		}
	}

	var items []T
	if !hasCursor || !cursor.Backward {
		if hasCursor {
			q = q.Where("created_at > ? OR (created_at = ? AND id > ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}
		if err := q.Order("created_at asc, id asc").Limit(perPage + 1).Find(&items).Error; err != nil {
			return nil, err
		}
	} else {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		if err := q.Order("created_at desc, id desc").Limit(perPage + 1).Find(&items).Error; err != nil {
			return nil, err
		}
		reverse(items)
	}

	page := &Page[T]{Path: path, PerPage: perPage}

	if !hasCursor || !cursor.Backward {
		// forward: an extra row means another page follows
		hasMore := len(items) > perPage
		if hasMore {
			items = items[:perPage]
		}
		page.Items = items
		if hasMore {
			at, id := key(items[len(items)-1])
			page.setNext(Cursor{CreatedAt: at, ID: id})
		}
		if hasCursor && len(items) > 0 {
			at, id := key(items[0])
			page.setPrev(Cursor{CreatedAt: at, ID: id, Backward: true})
		}
	} else {
		// backward: an extra row means an earlier page exists
		hasMore := len(items) > perPage
		if hasMore {
			items = items[1:]
		}
		page.Items = items
		if len(items) > 0 {
			at, id := key(items[len(items)-1])
			page.setNext(Cursor{CreatedAt: at, ID: id})
		}
		if hasMore && len(items) > 0 {
			at, id := key(items[0])
			page.setPrev(Cursor{CreatedAt: at, ID: id, Backward: true})
		}
	}

	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func (p *Page[T]) setNext(c Cursor) {
	tok := c.Encode()
	url := fmt.Sprintf("%s?cursor=%s&size=%d", p.Path, tok, p.PerPage)
	p.NextCursor = &tok
	p.NextPageURL = &url
}

func (p *Page[T]) setPrev(c Cursor) {
	tok := c.Encode()
	url := fmt.Sprintf("%s?cursor=%s&size=%d", p.Path, tok, p.PerPage)
	p.PrevCursor = &tok
	p.PrevPageURL = &url
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
