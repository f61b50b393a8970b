package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns all database migrations
func GetMigrations(dbType string) []Migration {
	if dbType == "postgres" {
		return getPostgresMigrations()
	}
	return getSQLiteMigrations()
}

// getPostgresMigrations returns PostgreSQL migrations
func getPostgresMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create fleet_users table",
			SQL: `CREATE TABLE IF NOT EXISTS fleet_users (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255),
				email VARCHAR(255) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				role_id INTEGER NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     2,
			Description: "Create companies table",
			SQL: `CREATE TABLE IF NOT EXISTS companies (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES fleet_users(id),
				name VARCHAR(255),
				established_date VARCHAR(64),
				registration_number VARCHAR(255),
				website VARCHAR(255),
				address1 VARCHAR(255),
				address2 VARCHAR(255),
				city VARCHAR(255),
				state VARCHAR(255),
				zip_code VARCHAR(32),
				contact_first_name VARCHAR(255),
				contact_last_name VARCHAR(255),
				contact_email VARCHAR(255),
				contact_phone VARCHAR(64),
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     3,
			Description: "Create drivers table",
			SQL: `CREATE TABLE IF NOT EXISTS drivers (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES fleet_users(id),
				company_id INTEGER,
				first_name VARCHAR(255),
				last_name VARCHAR(255),
				email VARCHAR(255),
				phone VARCHAR(64),
				date_of_birth VARCHAR(64),
				license_number VARCHAR(255),
				experience_years INTEGER,
				address1 VARCHAR(255),
				address2 VARCHAR(255),
				city VARCHAR(255),
				state VARCHAR(255),
				zip_code VARCHAR(32),
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     4,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_fleet_users_email ON fleet_users(email);
				CREATE INDEX IF NOT EXISTS idx_companies_user_id ON companies(user_id);
				CREATE INDEX IF NOT EXISTS idx_companies_is_active ON companies(is_active);
				CREATE INDEX IF NOT EXISTS idx_companies_updated_at ON companies(updated_at);
				CREATE INDEX IF NOT EXISTS idx_drivers_company_id ON drivers(company_id);
				CREATE INDEX IF NOT EXISTS idx_drivers_is_active ON drivers(is_active);
				CREATE INDEX IF NOT EXISTS idx_drivers_created_at ON drivers(created_at);`,
		},
	}
}

// getSQLiteMigrations returns SQLite migrations
func getSQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create fleet_users table",
			SQL: `CREATE TABLE IF NOT EXISTS fleet_users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				role_id INTEGER NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     2,
			Description: "Create companies table",
			SQL: `CREATE TABLE IF NOT EXISTS companies (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				name TEXT,
				established_date TEXT,
				registration_number TEXT,
				website TEXT,
				address1 TEXT,
				address2 TEXT,
				city TEXT,
				state TEXT,
				zip_code TEXT,
				contact_first_name TEXT,
				contact_last_name TEXT,
				contact_email TEXT,
				contact_phone TEXT,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES fleet_users(id)
			)`,
		},
		{
			Version:     3,
			Description: "Create drivers table",
			SQL: `CREATE TABLE IF NOT EXISTS drivers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				company_id INTEGER,
				first_name TEXT,
				last_name TEXT,
				email TEXT,
				phone TEXT,
				date_of_birth TEXT,
				license_number TEXT,
				experience_years INTEGER,
				address1 TEXT,
				address2 TEXT,
				city TEXT,
				state TEXT,
				zip_code TEXT,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES fleet_users(id)
			)`,
		},
		{
			Version:     4,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_fleet_users_email ON fleet_users(email);
				CREATE INDEX IF NOT EXISTS idx_companies_user_id ON companies(user_id);
				CREATE INDEX IF NOT EXISTS idx_companies_is_active ON companies(is_active);
				CREATE INDEX IF NOT EXISTS idx_companies_updated_at ON companies(updated_at);
				CREATE INDEX IF NOT EXISTS idx_drivers_company_id ON drivers(company_id);
				CREATE INDEX IF NOT EXISTS idx_drivers_is_active ON drivers(is_active);
				CREATE INDEX IF NOT EXISTS idx_drivers_created_at ON drivers(created_at);`,
		},
	}
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(db *sql.DB, dbType string) error {
	var query string
	if dbType == "postgres" {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`
	} else {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	}

	_, err := db.Exec(query)
	return err
}

// getAppliedMigrations returns the list of applied migration versions
func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return applied, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return applied, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// recordMigration records that a migration has been applied
func recordMigration(db *sql.DB, dbType string, version int) error {
	var query string
	if dbType == "postgres" {
		query = "INSERT INTO schema_migrations (version) VALUES ($1)"
	} else {
		query = "INSERT INTO schema_migrations (version) VALUES (?)"
	}
	_, err := db.Exec(query, version)
	return err
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB, dbType string) error {
	if err := createMigrationsTable(db, dbType); err != nil {
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %v", err)
	}

	for _, migration := range GetMigrations(dbType) {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Applying migration %d: %s", migration.Version, migration.Description)

		// Split SQL by semicolon and execute each statement
		statements := strings.Split(migration.SQL, ";")
		for _, stmt := range statements {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}

			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply migration %d: %v", migration.Version, err)
			}
		}

		if err := recordMigration(db, dbType, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %v", migration.Version, err)
		}
	}

	return nil
}
