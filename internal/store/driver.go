package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk-io/fleetdesk/internal/models"
)

var driverEntity = entityConfig{
	table: "drivers",
	selectColumns: `id, user_id, company_id, first_name, last_name, email, phone,
		date_of_birth, license_number, experience_years,
		address1, address2, city, state, zip_code,
		is_active, created_at, updated_at`,
	searchColumns:    []string{"first_name", "last_name", "email", "license_number", "city"},
	defaultLimit:     10,
	orderBy:          "created_at DESC",
	ownershipUpdate:  false,
	idempotentDelete: false,
}

func scanDriver(row interface{ Scan(...interface{}) error }) (*models.Driver, error) {
	d := &models.Driver{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.CompanyID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&d.DateOfBirth, &d.LicenseNumber, &d.ExperienceYears,
		&d.Address1, &d.Address2, &d.City, &d.State, &d.ZipCode,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDriver inserts a driver created by the authenticated user. The
// company assignment comes from the caller's token, not the request body,
// and may be absent.
func (s *Store) CreateDriver(ctx context.Context, userID int64, companyID *int64, in *models.DriverInput) (*models.Driver, error) {
	now := time.Now().UTC()

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO drivers (
			user_id, company_id, first_name, last_name, email, phone,
			date_of_birth, license_number, experience_years,
			address1, address2, city, state, zip_code,
			is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		RETURNING id`),
		userID, companyID, in.FirstName, in.LastName, in.Email, in.Phone,
		in.DateOfBirth, in.LicenseNumber, in.ExperienceYears,
		in.Address1, in.Address2, in.City, in.State, in.ZipCode,
		now, now,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}

	return s.GetDriverByID(ctx, id)
}

// GetDriverByID retrieves an active driver; inactive rows are invisible.
func (s *Store) GetDriverByID(ctx context.Context, id int64) (*models.Driver, error) {
	query := fmt.Sprintf("SELECT %s FROM drivers WHERE id = ? AND is_active = TRUE", driverEntity.selectColumns)
	driver, err := scanDriver(s.db.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// ListDrivers returns a page of active drivers plus the total count over
// the identical predicate. Params are normalized in place.
func (s *Store) ListDrivers(ctx context.Context, params *ListParams) ([]*models.Driver, int, error) {
	params.normalize(driverEntity.defaultLimit)

	query, args := driverEntity.listQuery(*params)
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := driverEntity.countQuery(params.Search)
	var total int
	if err := s.db.QueryRowContext(ctx, s.rebind(countQuery), countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return drivers, total, nil
}

// UpdateDriver applies a partial update with fallback to current values.
// Unlike companies, any authenticated user may update any active driver;
// ownership is not checked.
func (s *Store) UpdateDriver(ctx context.Context, id int64, in *models.DriverInput) (*models.Driver, error) {
	current, err := s.GetDriverByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE drivers SET
			first_name = ?, last_name = ?, email = ?, phone = ?,
			date_of_birth = ?, license_number = ?, experience_years = ?,
			address1 = ?, address2 = ?, city = ?, state = ?, zip_code = ?,
			updated_at = ?
		WHERE `+driverEntity.updatePredicate()),
		orKeep(in.FirstName, current.FirstName),
		orKeep(in.LastName, current.LastName),
		orKeep(in.Email, current.Email),
		orKeep(in.Phone, current.Phone),
		orKeep(in.DateOfBirth, current.DateOfBirth),
		orKeep(in.LicenseNumber, current.LicenseNumber),
		orKeepInt(in.ExperienceYears, current.ExperienceYears),
		orKeep(in.Address1, current.Address1),
		orKeep(in.Address2, current.Address2),
		orKeep(in.City, current.City),
		orKeep(in.State, current.State),
		orKeep(in.ZipCode, current.ZipCode),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetDriverByID(ctx, id)
}

// SoftDeleteDriver marks a driver inactive. Unlike companies, deleting an
// already-inactive driver is an error: the predicate only matches active
// rows.
func (s *Store) SoftDeleteDriver(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE drivers SET is_active = FALSE, updated_at = ? WHERE "+driverEntity.deletePredicate()),
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
