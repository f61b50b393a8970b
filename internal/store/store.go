package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fleetdesk-io/fleetdesk/internal/auth"
	"github.com/fleetdesk-io/fleetdesk/internal/database"
	"github.com/fleetdesk-io/fleetdesk/internal/models"
)

var (
	// ErrNotFound covers missing rows, soft-deleted rows, and ownership
	// mismatches alike: callers cannot tell them apart.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when registering with an email that
	// already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// Store handles all database operations. Queries are written with `?`
// placeholders and rebound to `$n` for PostgreSQL.
type Store struct {
	db     *sql.DB
	dbType string
}

// New creates a new store instance over an initialized database.
func New(d *database.Database) *Store {
	return &Store{db: d.DB, dbType: d.Type}
}

// rebind converts `?` placeholders to the dialect's positional form.
func (s *Store) rebind(query string) string {
	if s.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateUser creates a new user. Email uniqueness is checked before the
// insert, matching the registration flow.
func (s *Store) CreateUser(ctx context.Context, name *string, email, passwordHash string, roleID int64) (*models.User, error) {
	taken, err := s.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	var id int64
	err = s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO fleet_users (name, email, password_hash, role_id, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		name, email, passwordHash, roleID, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by id. The auth middleware calls this on
// every authenticated request.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT id, name, email, password_hash, role_id, created_at FROM fleet_users WHERE id = ?"),
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.RoleID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT id, name, email, password_hash, role_id, created_at FROM fleet_users WHERE email = ?"),
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.RoleID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EmailTaken reports whether a user with the given email exists.
func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT EXISTS(SELECT 1 FROM fleet_users WHERE email = ?)"),
		email,
	).Scan(&exists)
	return exists, err
}

// countActive returns the number of active rows in a table, for the admin
// dashboard.
func (s *Store) countActive(ctx context.Context, table string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE is_active = TRUE").Scan(&count)
	return count, err
}

// CountActiveCompanies returns the number of active companies.
func (s *Store) CountActiveCompanies(ctx context.Context) (int, error) {
	return s.countActive(ctx, "companies")
}

// CountActiveDrivers returns the number of active drivers.
func (s *Store) CountActiveDrivers(ctx context.Context) (int, error) {
	return s.countActive(ctx, "drivers")
}
