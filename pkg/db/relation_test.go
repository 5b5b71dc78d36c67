package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRelationDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE parents (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER)`,
		`CREATE TABLE grandchildren (id INTEGER PRIMARY KEY, child_id INTEGER)`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, parent_id INTEGER)`,
		`INSERT INTO parents (id) VALUES (1), (2)`,
		`INSERT INTO children (id, parent_id) VALUES (10, 1), (11, 1), (12, 2)`,
		`INSERT INTO grandchildren (id, child_id) VALUES (100, 10), (101, 11), (102, 12)`,
		`INSERT INTO notes (id, parent_id) VALUES (1000, 1), (1001, 2)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func count(t *testing.T, conn *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Table(table).Where(where, args...).Count(&n).Error)
	return n
}

func TestApplyDeletePolicy(t *testing.T) {
	conn := openRelationDB(t)
	ctx := context.Background()

	err := conn.Transaction(func(tx *gorm.DB) error {
		return ApplyDeletePolicy(ctx, tx, []int64{1},
			Relation{Table: "children", Column: "parent_id", Policy: Cascade, Children: []Relation{
				{Table: "grandchildren", Column: "child_id", Policy: Cascade},
			}},
			Relation{Table: "notes", Column: "parent_id", Policy: SetNull},
		)
	})
	require.NoError(t, err)

	assert.Zero(t, count(t, conn, "children", "parent_id = ?", 1))
	assert.Equal(t, int64(1), count(t, conn, "children", "parent_id = ?", 2))
	assert.Equal(t, int64(1), count(t, conn, "grandchildren", "1 = 1"))
	assert.Equal(t, int64(1), count(t, conn, "notes", "parent_id IS NULL"))
	assert.Equal(t, int64(2), count(t, conn, "notes", "1 = 1"))
}

func TestApplyDeletePolicyNoParents(t *testing.T) {
	conn := openRelationDB(t)

	require.NoError(t, ApplyDeletePolicy(context.Background(), conn, nil,
		Relation{Table: "missing", Column: "x", Policy: Cascade},
	))
}

func TestApplyDeletePolicyUnknown(t *testing.T) {
	conn := openRelationDB(t)

	err := ApplyDeletePolicy(context.Background(), conn, []int64{1}, Relation{Table: "notes", Column: "parent_id"})
	require.ErrorContains(t, err, "unknown delete policy")
	assert.Equal(t, "SET NULL", SetNull.String())
	assert.Equal(t, "UNKNOWN", DeletePolicy(0).String())
}
