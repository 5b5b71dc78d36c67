package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ id int }

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "123"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "123", cursor.ID)
}

func TestDecodeCursorRejects(t *testing.T) {
	for _, token := range []string{"%%%", "bm90LWpzb24=", "e30="} {
		_, err := DecodeCursor(token)
		assert.ErrorIs(t, err, ErrInvalidPageToken, token)
	}
}

func TestBuildCursorPageInfo(t *testing.T) {
	rows := []*row{{1}, {2}, {3}}
	extract := func(r *row) string { return strconv.Itoa(r.id) }

	info, page := BuildCursorPageInfo(rows, 2, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "2", info.NextPageToken)
	assert.Len(t, page, 2)

	info, page = BuildCursorPageInfo(rows, 3, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
	assert.Len(t, page, 3)

	info, page = BuildCursorPageInfo([]*row{}, 3, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, page)
}
