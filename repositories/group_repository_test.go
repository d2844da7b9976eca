package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL without a server and records every query statement.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=recipes dbname=recipes sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db, &statements
}

func TestParentOfLocksRow(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewGroupRepository(db)

	_, err := repo.ParentOf(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], `"recipe_groups"`)
	assert.Contains(t, (*statements)[0], "FOR UPDATE")
}

func TestGetOwnedForUpdateLocksRow(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewGroupRepository(db)

	_, err := repo.GetOwnedForUpdate(context.Background(), 7, 1)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], "FOR UPDATE")
}

func TestGetVisibleDoesNotLock(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewGroupRepository(db)

	_, err := repo.GetVisible(context.Background(), 7, nil)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.NotContains(t, (*statements)[0], "FOR UPDATE")
}
