package database

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS folders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS phrases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	folder TEXT NOT NULL,
	source_text TEXT NOT NULL,
	target_text TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS study_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_date DATE NOT NULL,
	duration_minutes INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS folders (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS phrases (
	id SERIAL PRIMARY KEY,
	folder TEXT NOT NULL,
	source_text TEXT NOT NULL,
	target_text TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS study_log (
	id SERIAL PRIMARY KEY,
	session_date DATE NOT NULL,
	duration_minutes INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
