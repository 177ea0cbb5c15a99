package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for every table, applied idempotently at
// startup.  The uniqueness rules the domain depends on live here rather
// than in handler checks: the registration identifier is the primary
// key, a candidate holds at most one registration and one bicycle, and
// a candidate cannot be invited to the same event twice.  The candidate
// name/birthday triple and the event due date are intentionally NOT
// constrained; those are advisory checks in the handlers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS staff_users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'STAFF',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_staff_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id)
			REFERENCES staff_users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS candidates (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		date_of_birth DATE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS handout_events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		due_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS registrations (
		identifier CHAR(20) NOT NULL PRIMARY KEY,
		candidate_id BIGINT UNSIGNED NOT NULL,
		bicycle_kind TINYINT UNSIGNED NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone_number VARCHAR(50) NOT NULL DEFAULT '',
		email_validated TINYINT(1) NOT NULL DEFAULT 0,
		time_of_email_validation DATETIME NULL,
		time_of_registration DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_registrations_candidate (candidate_id),
		KEY idx_registrations_kind (bicycle_kind, time_of_registration),
		CONSTRAINT fk_registrations_candidate FOREIGN KEY (candidate_id)
			REFERENCES candidates (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		candidate_id BIGINT UNSIGNED NOT NULL,
		event_id BIGINT UNSIGNED NOT NULL,
		time_of_invitation DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_invitations_candidate_event (candidate_id, event_id),
		KEY idx_invitations_event (event_id),
		CONSTRAINT fk_invitations_candidate FOREIGN KEY (candidate_id)
			REFERENCES candidates (id) ON DELETE CASCADE,
		CONSTRAINT fk_invitations_event FOREIGN KEY (event_id)
			REFERENCES handout_events (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bicycles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		candidate_id BIGINT UNSIGNED NOT NULL,
		bicycle_number INT UNSIGNED NOT NULL,
		lock_combination INT UNSIGNED NOT NULL,
		color VARCHAR(200) NOT NULL DEFAULT '',
		brand VARCHAR(200) NOT NULL DEFAULT '',
		general_remarks TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bicycles_candidate (candidate_id),
		CONSTRAINT fk_bicycles_candidate FOREIGN KEY (candidate_id)
			REFERENCES candidates (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables.  Statements are idempotent
// so repeated startups are safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
