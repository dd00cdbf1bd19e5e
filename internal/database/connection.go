package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database. With an empty url it uses the local SQLite
// file under dataDir; a postgres:// url switches to PostgreSQL (schema
// managed externally in that case).
func Connect(dataDir, url string) (*sqlx.DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vivalingo.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitializeSchema creates the tables if they don't exist. Exported so
// tests can run it against an in-memory database.
func InitializeSchema(db *sqlx.DB) error {
	statements := []struct {
		name  string
		query string
	}{
		{"profiles", `
			CREATE TABLE IF NOT EXISTS profiles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				level TEXT DEFAULT 'C1',
				weekly_goal INTEGER DEFAULT 6,
				placement_completed BOOLEAN DEFAULT false,
				placement_score REAL,
				focus_areas TEXT DEFAULT '[]',
				dialect_preference TEXT DEFAULT 'Spain',
				grading_mode TEXT DEFAULT 'balanced',
				accent_tolerance BOOLEAN DEFAULT true,
				is_active BOOLEAN DEFAULT false,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				updated_at TEXT DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"vocab_items", `
			CREATE TABLE IF NOT EXISTS vocab_items (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				term TEXT NOT NULL,
				meaning TEXT DEFAULT '',
				example TEXT DEFAULT '',
				domain TEXT DEFAULT '',
				register TEXT DEFAULT '',
				part_of_speech TEXT DEFAULT '',
				collocations TEXT DEFAULT '[]',
				exposure_count INTEGER DEFAULT 0,
				status TEXT DEFAULT 'new',
				ease_factor REAL DEFAULT 2.5,
				interval_days INTEGER DEFAULT 1,
				next_review TEXT,
				last_reviewed TEXT,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(profile_id, term)
			)
		`},
		{"grammar_patterns", `
			CREATE TABLE IF NOT EXISTS grammar_patterns (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				pattern_name TEXT NOT NULL,
				category TEXT NOT NULL,
				prompt TEXT DEFAULT '',
				options TEXT DEFAULT '[]',
				answer TEXT DEFAULT '',
				explanation TEXT DEFAULT '',
				examples TEXT DEFAULT '[]',
				exposure_count INTEGER DEFAULT 0,
				status TEXT DEFAULT 'new',
				ease_factor REAL DEFAULT 2.5,
				interval_days INTEGER DEFAULT 1,
				next_review TEXT,
				last_reviewed TEXT,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(profile_id, pattern_name)
			)
		`},
		{"mistakes", `
			CREATE TABLE IF NOT EXISTS mistakes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				user_text TEXT NOT NULL,
				corrected_text TEXT NOT NULL,
				error_type TEXT NOT NULL,
				error_tag TEXT DEFAULT '',
				pattern TEXT DEFAULT '',
				explanation TEXT DEFAULT '',
				examples TEXT DEFAULT '[]',
				confidence REAL DEFAULT 0.5,
				review_count INTEGER DEFAULT 0,
				ease_factor REAL DEFAULT 2.5,
				interval_days INTEGER DEFAULT 1,
				next_review TEXT,
				last_reviewed TEXT,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"verb_conjugations", `
			CREATE TABLE IF NOT EXISTS verb_conjugations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				infinitive TEXT NOT NULL,
				meaning TEXT DEFAULT '',
				tense TEXT NOT NULL,
				person TEXT NOT NULL,
				form TEXT NOT NULL,
				irregular BOOLEAN DEFAULT false,
				exposure_count INTEGER DEFAULT 0,
				status TEXT DEFAULT 'new',
				ease_factor REAL DEFAULT 2.5,
				interval_days INTEGER DEFAULT 1,
				next_review TEXT,
				last_reviewed TEXT,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(profile_id, infinitive, tense, person)
			)
		`},
		{"domain_exposure", `
			CREATE TABLE IF NOT EXISTS domain_exposure (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				domain TEXT NOT NULL,
				exposure_count INTEGER DEFAULT 0,
				last_exposure TEXT,
				total_items INTEGER DEFAULT 0,
				mastered_items INTEGER DEFAULT 0,
				UNIQUE(profile_id, domain)
			)
		`},
		{"progress_metrics", `
			CREATE TABLE IF NOT EXISTS progress_metrics (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				metric_date TEXT NOT NULL,
				speaking_minutes REAL DEFAULT 0,
				writing_words INTEGER DEFAULT 0,
				vocab_reviewed INTEGER DEFAULT 0,
				grammar_reviewed INTEGER DEFAULT 0,
				verbs_reviewed INTEGER DEFAULT 0,
				errors_fixed INTEGER DEFAULT 0,
				missions_completed INTEGER DEFAULT 0,
				active_vocab_count INTEGER DEFAULT 0,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(profile_id, metric_date)
			)
		`},
		{"conversations", `
			CREATE TABLE IF NOT EXISTS conversations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				scenario_title TEXT NOT NULL,
				hidden_targets TEXT DEFAULT '[]',
				messages TEXT DEFAULT '[]',
				achieved_targets TEXT DEFAULT '[]',
				feedback TEXT DEFAULT '',
				completed BOOLEAN DEFAULT false,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"daily_missions", `
			CREATE TABLE IF NOT EXISTS daily_missions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				profile_id INTEGER DEFAULT 1,
				mission_date TEXT NOT NULL,
				mission_type TEXT NOT NULL,
				title TEXT DEFAULT '',
				prompt TEXT DEFAULT '',
				constraints TEXT DEFAULT '[]',
				user_response TEXT DEFAULT '',
				feedback TEXT DEFAULT '',
				score REAL,
				completed BOOLEAN DEFAULT false,
				created_at TEXT DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(profile_id, mission_date)
			)
		`},
	}

	for _, s := range statements {
		if _, err := db.Exec(s.query); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.name, err)
		}
	}
	return nil
}
