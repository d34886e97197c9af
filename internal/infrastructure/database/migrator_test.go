package database

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/migrations"
)

func TestParseMigrations_PairsAndSorts(t *testing.T) {
	files := fstest.MapFS{
		"0002_orders.up.sql":   {Data: []byte("CREATE TABLE orders();")},
		"0002_orders.down.sql": {Data: []byte("DROP TABLE orders;")},
		"0001_users.up.sql":    {Data: []byte("CREATE TABLE users();")},
		"README.md":            {Data: []byte("ignored")},
	}

	got, err := ParseMigrations(files)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "users", got[0].Name)
	assert.Empty(t, got[0].Down)
	assert.Equal(t, "DROP TABLE orders;", got[1].Down)
}

func TestParseMigrations_DownWithoutUp(t *testing.T) {
	_, err := ParseMigrations(fstest.MapFS{
		"0003_x.down.sql": {Data: []byte("DROP TABLE x;")},
	})

	assert.ErrorContains(t, err, "has no up file")
}

func TestParseMigrations_ConflictingNames(t *testing.T) {
	_, err := ParseMigrations(fstest.MapFS{
		"0001_a.up.sql":   {Data: []byte("SELECT 1;")},
		"0001_b.down.sql": {Data: []byte("SELECT 1;")},
	})

	assert.ErrorContains(t, err, "conflicting names")
}

func TestEmbeddedMigrationsAreComplete(t *testing.T) {
	got, err := ParseMigrations(migrations.FS)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	for i, mig := range got {
		assert.Equal(t, i+1, mig.Version, "versions must be contiguous")
		assert.NotEmpty(t, mig.Down, "migration %d_%s needs a down file", mig.Version, mig.Name)
	}
}

func TestPendingAndLastApplied(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	applied := map[int]time.Time{1: time.Now(), 2: time.Now()}

	p := pending(all, applied)
	require.Len(t, p, 1)
	assert.Equal(t, 3, p[0].Version)

	last := lastApplied(all, applied, 5)
	require.Len(t, last, 2)
	assert.Equal(t, 2, last[0].Version)
	assert.Equal(t, 1, last[1].Version)

	assert.Len(t, lastApplied(all, applied, 1), 1)
}
