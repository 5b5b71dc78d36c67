package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrInvalidPageToken = errors.New("invalid_page_token")

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type Cursor struct {
	ID string `json:"id,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil, ErrInvalidPageToken
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, ErrInvalidPageToken
	}
	if cursor.ID == "" {
		return nil, ErrInvalidPageToken
	}

	return &cursor, nil
}

// BuildCursorPageInfo expects data fetched with limit+1 rows and returns the
// page info together with data trimmed to limit.
func BuildCursorPageInfo[T any](data []*T, limit int, extractCursor func(*T) string) (PageInfo, []*T) {
	if len(data) == 0 || limit <= 0 {
		return PageInfo{HasMore: false}, data
	}

	if len(data) <= limit {
		return PageInfo{HasMore: false}, data
	}

	data = data[:limit]
	return PageInfo{
		HasMore:       true,
		NextPageToken: extractCursor(data[len(data)-1]),
	}, data
}
