package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		file_path TEXT NOT NULL,
		upload_date DATETIME NOT NULL,
		last_accessed DATETIME NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		pages INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS content (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL,
		chapter TEXT NOT NULL,
		theme TEXT NOT NULL,
		subtheme TEXT NOT NULL,
		page INTEGER NOT NULL,
		text_content TEXT NOT NULL,
		is_important BOOLEAN NOT NULL DEFAULT 0,
		last_reviewed DATETIME,
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_date DATETIME NOT NULL,
		last_reviewed DATETIME,
		difficulty INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (content_id) REFERENCES content(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id INTEGER NOT NULL,
		question_type TEXT NOT NULL,
		question_text TEXT NOT NULL,
		options TEXT NOT NULL DEFAULT '[]',
		correct_answer TEXT NOT NULL,
		explanation TEXT NOT NULL DEFAULT '',
		difficulty INTEGER NOT NULL DEFAULT 1,
		created_date DATETIME NOT NULL,
		FOREIGN KEY (content_id) REFERENCES content(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_document ON content(document_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_content ON flashcards(content_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_content ON questions(content_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(512) NOT NULL,
		file_path VARCHAR(1024) NOT NULL,
		upload_date DATETIME NOT NULL,
		last_accessed DATETIME NOT NULL,
		category VARCHAR(255) NOT NULL DEFAULT '',
		pages INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS content (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		document_id BIGINT NOT NULL,
		chapter VARCHAR(512) NOT NULL,
		theme VARCHAR(512) NOT NULL,
		subtheme VARCHAR(512) NOT NULL,
		page INT NOT NULL,
		text_content LONGTEXT NOT NULL,
		is_important BOOLEAN NOT NULL DEFAULT FALSE,
		last_reviewed DATETIME NULL,
		INDEX idx_content_document (document_id),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		content_id BIGINT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_date DATETIME NOT NULL,
		last_reviewed DATETIME NULL,
		difficulty INT NOT NULL DEFAULT 1,
		INDEX idx_flashcards_content (content_id),
		FOREIGN KEY (content_id) REFERENCES content(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		content_id BIGINT NOT NULL,
		question_type VARCHAR(32) NOT NULL,
		question_text TEXT NOT NULL,
		options JSON NOT NULL,
		correct_answer TEXT NOT NULL,
		explanation TEXT NOT NULL,
		difficulty INT NOT NULL DEFAULT 1,
		created_date DATETIME NOT NULL,
		INDEX idx_questions_content (content_id),
		FOREIGN KEY (content_id) REFERENCES content(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the tables used by the study repository. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverMySQL {
		schema = mysqlSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db.ExecContext(migrate) > %w", err)
		}
	}
	return nil
}
