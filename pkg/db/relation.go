package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DeletePolicy tells what happens to dependent rows when their parent is deleted.
type DeletePolicy int

const (
	// Cascade deletes the dependent rows.
	Cascade DeletePolicy = iota + 1
	// SetNull keeps the dependent rows and clears the foreign key.
	SetNull
)

func (p DeletePolicy) String() string {
	switch p {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	default:
		return "UNKNOWN"
	}
}

// Relation describes a foreign key Column in Table pointing at the parent.
// Children are applied to the dependent rows before a cascade removes them and
// require Table to have an id column.
type Relation struct {
	Table    string
	Column   string
	Policy   DeletePolicy
	Children []Relation
}

// ApplyDeletePolicy enforces relations for the parents identified by parentIDs.
// It must run in the same transaction as the parent delete.
func ApplyDeletePolicy(ctx context.Context, tx *gorm.DB, parentIDs []int64, relations ...Relation) error {
	if len(parentIDs) == 0 {
		return nil
	}

	for _, rel := range relations {
		switch rel.Policy {
		case SetNull:
			stmt := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s IN ?", rel.Table, rel.Column, rel.Column)
			if err := tx.WithContext(ctx).Exec(stmt, parentIDs).Error; err != nil {
				return fmt.Errorf("%s.%s set null: %w", rel.Table, rel.Column, err)
			}
		case Cascade:
			if len(rel.Children) > 0 {
				var childIDs []int64
				if err := tx.WithContext(ctx).
					Table(rel.Table).
					Where(rel.Column+" IN ?", parentIDs).
					Pluck("id", &childIDs).Error; err != nil {
					return fmt.Errorf("%s.%s collect: %w", rel.Table, rel.Column, err)
				}
				if err := ApplyDeletePolicy(ctx, tx, childIDs, rel.Children...); err != nil {
					return err
				}
			}
			stmt := fmt.Sprintf("DELETE FROM %s WHERE %s IN ?", rel.Table, rel.Column)
			if err := tx.WithContext(ctx).Exec(stmt, parentIDs).Error; err != nil {
				return fmt.Errorf("%s.%s cascade: %w", rel.Table, rel.Column, err)
			}
		default:
			return fmt.Errorf("%s.%s: unknown delete policy %d", rel.Table, rel.Column, rel.Policy)
		}
	}
	return nil
}
