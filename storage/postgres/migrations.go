package postgres

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		picture TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		goals TEXT NOT NULL,
		routine TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT false,
		"timestamp" TIMESTAMPTZ NOT NULL DEFAULT now(),
		priority TEXT NOT NULL DEFAULT 'normal'
			CHECK (priority IN ('high', 'medium', 'low', 'normal')),
		recurring BOOLEAN NOT NULL DEFAULT false
	)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		"time" TEXT NOT NULL,
		category TEXT NOT NULL
			CHECK (category IN ('work', 'personal', 'fitness')),
		completed BOOLEAN NOT NULL DEFAULT false,
		"date" DATE NOT NULL,
		"timestamp" TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_user_timestamp ON notes(user_id, "timestamp")`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user_timestamp ON reminders(user_id, "timestamp")`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user_date ON reminders(user_id, "date")`,
}
