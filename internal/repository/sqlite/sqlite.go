// Package sqlite implements the repository interfaces on an embedded SQLite
// database.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite — no CGo, no C toolchain, trivially
// cross-compiled, and ":memory:" databases make the repository tests fast
// and fully isolated. A single-server marketing site has no need for a
// database server process.
//
// All queries are parameterized (? placeholders); SQL is never assembled
// from request input. The only dynamic SQL is the column list of partial
// updates, which is built from a fixed set of column names.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface declared in the repository package.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server sharing one database file.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. We rely on them for the
	// project → assets/feedback/milestones cascade, so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every start.
func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                TEXT PRIMARY KEY,
			email             TEXT UNIQUE,
			first_name        TEXT NOT NULL DEFAULT '',
			last_name         TEXT NOT NULL DEFAULT '',
			profile_image_url TEXT NOT NULL DEFAULT '',
			role              TEXT NOT NULL DEFAULT 'client',
			password_hash     TEXT NOT NULL DEFAULT '',
			created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS content_sections (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			section_type TEXT NOT NULL,
			title        TEXT NOT NULL DEFAULT '',
			subtitle     TEXT NOT NULL DEFAULT '',
			content      TEXT NOT NULL DEFAULT '',
			image_url    TEXT NOT NULL DEFAULT '',
			video_url    TEXT NOT NULL DEFAULT '',
			is_active    INTEGER NOT NULL DEFAULT 1,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_sections_type ON content_sections(section_type)`,

		`CREATE TABLE IF NOT EXISTS services (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon_class  TEXT NOT NULL DEFAULT '',
			is_active   INTEGER NOT NULL DEFAULT 1,
			sort_order  INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS portfolio_projects (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			title         TEXT NOT NULL,
			client        TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			thumbnail_url TEXT NOT NULL DEFAULT '',
			video_url     TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			is_active     INTEGER NOT NULL DEFAULT 1,
			is_featured   INTEGER NOT NULL DEFAULT 0,
			sort_order    INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS blog_posts (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			title              TEXT NOT NULL,
			slug               TEXT NOT NULL UNIQUE,
			excerpt            TEXT NOT NULL DEFAULT '',
			content            TEXT NOT NULL DEFAULT '',
			featured_image_url TEXT NOT NULL DEFAULT '',
			is_published       INTEGER NOT NULL DEFAULT 0,
			published_at       DATETIME,
			author_id          TEXT REFERENCES users(id),
			created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS testimonials (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			client_name      TEXT NOT NULL,
			client_title     TEXT NOT NULL DEFAULT '',
			client_company   TEXT NOT NULL DEFAULT '',
			client_image_url TEXT NOT NULL DEFAULT '',
			quote            TEXT NOT NULL,
			rating           INTEGER NOT NULL DEFAULT 0,
			is_active        INTEGER NOT NULL DEFAULT 1,
			sort_order       INTEGER NOT NULL DEFAULT 0,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			company      TEXT NOT NULL DEFAULT '',
			project_type TEXT NOT NULL DEFAULT '',
			message      TEXT NOT NULL DEFAULT '',
			is_read      INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS client_projects (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			client_id    TEXT REFERENCES users(id),
			status       TEXT NOT NULL DEFAULT 'planning',
			budget       TEXT NOT NULL DEFAULT '',
			deadline     DATETIME,
			project_type TEXT NOT NULL DEFAULT '',
			is_active    INTEGER NOT NULL DEFAULT 1,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_client_projects_client ON client_projects(client_id)`,

		`CREATE TABLE IF NOT EXISTS project_assets (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id         INTEGER NOT NULL REFERENCES client_projects(id) ON DELETE CASCADE,
			file_name          TEXT NOT NULL DEFAULT '',
			file_url           TEXT NOT NULL DEFAULT '',
			file_type          TEXT NOT NULL DEFAULT '',
			version            INTEGER NOT NULL DEFAULT 1,
			uploaded_by        TEXT REFERENCES users(id),
			is_current_version INTEGER NOT NULL DEFAULT 1,
			created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_project_assets_project ON project_assets(project_id)`,

		`CREATE TABLE IF NOT EXISTS project_feedback (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES client_projects(id) ON DELETE CASCADE,
			asset_id   INTEGER REFERENCES project_assets(id) ON DELETE CASCADE,
			user_id    TEXT REFERENCES users(id),
			comment    TEXT NOT NULL,
			timestamp  TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'open',
			priority   TEXT NOT NULL DEFAULT 'medium',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_project_feedback_project ON project_feedback(project_id)`,

		`CREATE TABLE IF NOT EXISTS project_milestones (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id   INTEGER NOT NULL REFERENCES client_projects(id) ON DELETE CASCADE,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			due_date     DATETIME,
			is_completed INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME,
			sort_order   INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_project_milestones_project ON project_milestones(project_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}

	return nil
}

// joinSets joins the SET fragments of a partial update.
func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The modernc driver exposes constraint errors by message only, so
// this is a string check — kept in one place so the fragility is contained.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// reorder rewrites the sort_order of the given table so that each id's rank
// is its position in ids (1-based). Runs in one transaction; ids that do
// not exist simply update zero rows. The optional scope clause restricts the
// update (used to keep milestone reordering inside one project).
func (db *DB) reorder(ctx context.Context, table string, ids []int64, scopeClause string, scopeArgs ...any) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning reorder tx: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`UPDATE %s SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, table)
	if scopeClause != "" {
		query = fmt.Sprintf(`UPDATE %s SET sort_order = ? WHERE id = ? AND %s`, table, scopeClause)
	}

	for pos, id := range ids {
		args := append([]any{pos + 1, id}, scopeArgs...)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("sqlite: reordering %s id %d: %w", table, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing reorder: %w", err)
	}
	return nil
}
