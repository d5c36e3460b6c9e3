package keysheet

// currentSchemaVersion is written on create and checked on every Open.
// Later schema changes bump it and add a migration step in migrate.
const currentSchemaVersion = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS sheets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE,
	note TEXT,
	settings TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`
