package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle holding seed profiles and login credentials.
type DB struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Open(): failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to connect to database: %w", err)
	}

	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS profiles (
			"user" TEXT PRIMARY KEY,
			"years" REAL,
			"dob" TEXT,
			"title" TEXT,
			"manager" TEXT,
			"salary" INTEGER,
			"pto_balance" INTEGER
	);`
	createCredentialsTable := `
	CREATE TABLE IF NOT EXISTS credentials (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL
	);`

	if _, err := db.ExecContext(ctx, createProfilesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to create profiles table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createCredentialsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to create credentials table: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
