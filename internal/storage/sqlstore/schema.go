package sqlstore

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS threads (
    thread_id  INTEGER PRIMARY KEY AUTOINCREMENT,
    title      TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    post_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS posts (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    thread_id INTEGER NOT NULL REFERENCES threads(thread_id),
    post_id   INTEGER NOT NULL,
    name      TEXT NOT NULL,
    message   TEXT NOT NULL,
    date      TIMESTAMP NOT NULL,
    rep_id    INTEGER,
    UNIQUE (thread_id, post_id)
);

CREATE INDEX IF NOT EXISTS idx_posts_thread_date ON posts(thread_id, date);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS threads (
    thread_id  BIGSERIAL PRIMARY KEY,
    title      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    post_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS posts (
    id        BIGSERIAL PRIMARY KEY,
    thread_id BIGINT NOT NULL REFERENCES threads(thread_id),
    post_id   BIGINT NOT NULL,
    name      TEXT NOT NULL,
    message   TEXT NOT NULL,
    date      TIMESTAMPTZ NOT NULL,
    rep_id    BIGINT,
    UNIQUE (thread_id, post_id)
);

CREATE INDEX IF NOT EXISTS idx_posts_thread_date ON posts(thread_id, date);
`

// InitSchema creates the tables if they do not exist yet. Runs under the
// startup retry policy: a database still coming up should not kill the
// process.
func (s *Storage) InitSchema() error {
	ddl := schemaSQLite
	if s.dialect == DialectPostgres {
		ddl = schemaPostgres
	}
	return s.startupRetry.Do(func() error {
		_, err := s.db.Exec(ddl)
		return err
	})
}
