package database

// Timestamps are UTC Unix nanoseconds in both dialects.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		text TEXT NOT NULL,
		options_json TEXT NOT NULL,
		answer_json TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id BIGSERIAL PRIMARY KEY,
		quiz_id BIGINT NOT NULL,
		completed_by TEXT NOT NULL,
		completed_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quizzes_slug ON quizzes(slug, id)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_user_time ON completions(completed_by, completed_at DESC, id DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		text TEXT NOT NULL,
		options_json TEXT NOT NULL,
		answer_json TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quiz_id INTEGER NOT NULL,
		completed_by TEXT NOT NULL,
		completed_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quizzes_slug ON quizzes(slug, id)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_user_time ON completions(completed_by, completed_at DESC, id DESC)`,
}
