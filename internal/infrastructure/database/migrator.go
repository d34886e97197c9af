package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// Migration is one versioned schema change with its rollback.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// MigrationStatus reports whether a migration has been applied.
type MigrationStatus struct {
	Version   int
	Name      string
	AppliedAt *time.Time
}

// Migrator applies embedded SQL migrations over database/sql. Every
// migration runs in its own transaction together with its bookkeeping row.
type Migrator struct {
	files fs.FS
	db    *sql.DB
}

func NewMigrator(files fs.FS, db *sql.DB) *Migrator {
	return &Migrator{files: files, db: db}
}

// ParseMigrations reads {version}_{name}.up.sql / .down.sql pairs sorted by
// version. A missing up file is an error; a missing down file is not.
func ParseMigrations(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := map[int]*Migration{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := migrationFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		content, err := fs.ReadFile(files, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: m[2]}
			byVersion[version] = mig
		} else if mig.Name != m[2] {
			return nil, fmt.Errorf("migration %d has conflicting names %q and %q", version, mig.Name, m[2])
		}
		if m[3] == "up" {
			mig.Up = string(content)
		} else {
			mig.Down = string(content)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" {
			return nil, fmt.Errorf("migration %d_%s has no up file", mig.Version, mig.Name)
		}
		out = append(out, *mig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[int]time.Time{}
	for rows.Next() {
		var (
			version int
			at      time.Time
		)
		if err := rows.Scan(&version, &at); err != nil {
			return nil, err
		}
		out[version] = at
	}
	return out, rows.Err()
}

func (m *Migrator) load(ctx context.Context) ([]Migration, map[int]time.Time, error) {
	migrations, err := ParseMigrations(m.files)
	if err != nil {
		return nil, nil, err
	}
	if err := m.ensureTable(ctx); err != nil {
		return nil, nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, nil, err
	}
	return migrations, applied, nil
}

// Up applies every pending migration and returns the versions it ran.
func (m *Migrator) Up(ctx context.Context) ([]int, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var ran []int
	for _, mig := range pending(migrations, applied) {
		err := m.inTx(ctx, mig.Up, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
		if err != nil {
			return ran, fmt.Errorf("apply %d_%s: %w", mig.Version, mig.Name, err)
		}
		log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("migration applied")
		ran = append(ran, mig.Version)
	}
	return ran, nil
}

// Down rolls back the n most recently applied migrations.
func (m *Migrator) Down(ctx context.Context, n int) ([]int, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var rolled []int
	for _, mig := range lastApplied(migrations, applied, n) {
		if mig.Down == "" {
			return rolled, fmt.Errorf("migration %d_%s has no down file", mig.Version, mig.Name)
		}
		err := m.inTx(ctx, mig.Down, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version)
		if err != nil {
			return rolled, fmt.Errorf("roll back %d_%s: %w", mig.Version, mig.Name, err)
		}
		log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("migration rolled back")
		rolled = append(rolled, mig.Version)
	}
	return rolled, nil
}

// Status lists every known migration with its applied time, if any.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, len(migrations))
	for i, mig := range migrations {
		out[i] = MigrationStatus{Version: mig.Version, Name: mig.Name}
		if at, ok := applied[mig.Version]; ok {
			out[i].AppliedAt = &at
		}
	}
	return out, nil
}

func (m *Migrator) inTx(ctx context.Context, script, bookkeeping string, args ...any) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, bookkeeping, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func pending(migrations []Migration, applied map[int]time.Time) []Migration {
	var out []Migration
	for _, mig := range migrations {
		if _, ok := applied[mig.Version]; !ok {
			out = append(out, mig)
		}
	}
	return out
}

// lastApplied returns up to n applied migrations, newest first.
func lastApplied(migrations []Migration, applied map[int]time.Time, n int) []Migration {
	var out []Migration
	for i := len(migrations) - 1; i >= 0 && len(out) < n; i-- {
		if _, ok := applied[migrations[i].Version]; ok {
			out = append(out, migrations[i])
		}
	}
	return out
}
