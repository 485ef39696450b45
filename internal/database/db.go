package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables the service needs when they do not
// exist yet.  It keeps local development and tests self-contained; a
// managed deployment would run migrations instead.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36) PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			roles         VARCHAR(64)  NOT NULL DEFAULT 'user'
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id            CHAR(36) PRIMARY KEY,
			title         VARCHAR(255) NOT NULL,
			description   TEXT NOT NULL,
			category      VARCHAR(255) NOT NULL DEFAULT '',
			venue         VARCHAR(255) NOT NULL DEFAULT '',
			date          DATETIME NOT NULL,
			time          VARCHAR(64) NOT NULL DEFAULT '',
			seat_capacity INT NOT NULL,
			booked_seats  INT NOT NULL DEFAULT 0,
			price         DOUBLE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id            CHAR(36) PRIMARY KEY,
			user_id       CHAR(36) NOT NULL,
			event_id      CHAR(36) NOT NULL,
			quantity      INT NOT NULL,
			booking_date  DATETIME NOT NULL,
			check_in_code TEXT NOT NULL,
			UNIQUE KEY uq_user_event (user_id, event_id),
			KEY idx_event (event_id)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
