// ABOUTME: SQLite database schema for coach storage
// ABOUTME: Creates the routine, activity, task and conversation tables with their indexes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Routines (recurring daily reminders)
CREATE TABLE IF NOT EXISTS routines (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    time TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One active routine per (name, time); inactive rows are history
CREATE UNIQUE INDEX IF NOT EXISTS idx_routines_active_name_time
    ON routines(name, time) WHERE active = 1;
CREATE INDEX IF NOT EXISTS idx_routines_time ON routines(time);

-- Activities (append-only log)
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date);
CREATE INDEX IF NOT EXISTS idx_activities_category ON activities(category);

-- Tasks (one-off, dated)
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    time TEXT NOT NULL,
    date TEXT NOT NULL,
    is_done INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);

-- Conversations (append-only log)
CREATE TABLE IF NOT EXISTS conversations (
    id TEXT PRIMARY KEY,
    user_message TEXT NOT NULL,
    ai_response TEXT NOT NULL DEFAULT '',
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_conversations_timestamp ON conversations(timestamp);
`
