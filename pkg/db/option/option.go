package option

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// ApplyPagination pages by descending snowflake id and fetches one extra row so
// callers can tell whether another page exists. Unreadable tokens start from
// the first page; services reject them before reaching the query.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if page.PageToken != "" {
			if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil {
				if id, err := snowflake.ParseString(cursor.ID); err == nil {
					db = db.Where("id < ?", id.Int64())
				}
			}
		}
		db = db.Order("id desc")
		if page.PageSize > 0 {
			db = db.Limit(page.PageSize + 1)
		}
		return db
	})
}

type SortBy struct {
	Column string
	Desc   bool
}

// WithQuerySortBy resolves user supplied sort parameters against an allow list.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) SortBy {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if !allowed[column] {
		column = "id"
	}
	return SortBy{
		Column: column,
		Desc:   !strings.EqualFold(strings.TrimSpace(orderBy), "asc"),
	}
}

func WithSortBy(sort SortBy) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if sort.Column == "" {
			return db
		}
		direction := "asc"
		if sort.Desc {
			direction = "desc"
		}
		return db.Order(sort.Column + " " + direction)
	})
}

func WithLimit(limit int) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}
