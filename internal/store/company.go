package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk-io/fleetdesk/internal/models"
)

var companyEntity = entityConfig{
	table: "companies",
	selectColumns: `id, user_id, name, established_date, registration_number, website,
		address1, address2, city, state, zip_code,
		contact_first_name, contact_last_name, contact_email, contact_phone,
		is_active, created_at, updated_at`,
	searchColumns:    []string{"name", "registration_number", "contact_email", "contact_phone", "city"},
	defaultLimit:     5,
	orderBy:          "updated_at DESC",
	ownershipUpdate:  true,
	idempotentDelete: true,
}

// orKeep returns the request value when supplied, otherwise the current
// stored value. Omission means "keep as is"; there is no way to clear.
func orKeep(in, cur *string) *string {
	if in != nil {
		return in
	}
	return cur
}

func orKeepInt(in, cur *int64) *int64 {
	if in != nil {
		return in
	}
	return cur
}

func scanCompany(row interface{ Scan(...interface{}) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.EstablishedDate, &c.RegistrationNumber, &c.Website,
		&c.Address1, &c.Address2, &c.City, &c.State, &c.ZipCode,
		&c.ContactFirstName, &c.ContactLastName, &c.ContactEmail, &c.ContactPhone,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCompany inserts a company owned by the authenticated user and
// returns the full created record.
func (s *Store) CreateCompany(ctx context.Context, userID int64, in *models.CompanyInput) (*models.Company, error) {
	now := time.Now().UTC()

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO companies (
			user_id, name, established_date, registration_number, website,
			address1, address2, city, state, zip_code,
			contact_first_name, contact_last_name, contact_email, contact_phone,
			is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		RETURNING id`),
		userID, in.Name, in.EstablishedDate, in.RegistrationNumber, in.Website,
		in.Address1, in.Address2, in.City, in.State, in.ZipCode,
		in.ContactFirstName, in.ContactLastName, in.ContactEmail, in.ContactPhone,
		now, now,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	return s.GetCompanyByID(ctx, id)
}

// GetCompanyByID retrieves an active company; inactive rows are invisible.
func (s *Store) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	query := fmt.Sprintf("SELECT %s FROM companies WHERE id = ? AND is_active = TRUE", companyEntity.selectColumns)
	company, err := scanCompany(s.db.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies returns a page of active companies plus the total count
// over the identical predicate. The two queries are independent
// round-trips; exact consistency under concurrent writes is not guaranteed.
// Params are normalized in place so the caller can echo them back.
func (s *Store) ListCompanies(ctx context.Context, params *ListParams) ([]*models.Company, int, error) {
	params.normalize(companyEntity.defaultLimit)

	query, args := companyEntity.listQuery(*params)
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := companyEntity.countQuery(params.Search)
	var total int
	if err := s.db.QueryRowContext(ctx, s.rebind(countQuery), countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// UpdateCompany applies a partial update with fallback to current values
// and rewrites every column. The caller must own the record: a foreign
// owner gets the same ErrNotFound as a missing record.
func (s *Store) UpdateCompany(ctx context.Context, id, userID int64, in *models.CompanyInput) (*models.Company, error) {
	current, err := s.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE companies SET
			name = ?, established_date = ?, registration_number = ?, website = ?,
			address1 = ?, address2 = ?, city = ?, state = ?, zip_code = ?,
			contact_first_name = ?, contact_last_name = ?, contact_email = ?, contact_phone = ?,
			updated_at = ?
		WHERE `+companyEntity.updatePredicate()),
		orKeep(in.Name, current.Name),
		orKeep(in.EstablishedDate, current.EstablishedDate),
		orKeep(in.RegistrationNumber, current.RegistrationNumber),
		orKeep(in.Website, current.Website),
		orKeep(in.Address1, current.Address1),
		orKeep(in.Address2, current.Address2),
		orKeep(in.City, current.City),
		orKeep(in.State, current.State),
		orKeep(in.ZipCode, current.ZipCode),
		orKeep(in.ContactFirstName, current.ContactFirstName),
		orKeep(in.ContactLastName, current.ContactLastName),
		orKeep(in.ContactEmail, current.ContactEmail),
		orKeep(in.ContactPhone, current.ContactPhone),
		time.Now().UTC(),
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetCompanyByID(ctx, id)
}

// SoftDeleteCompany marks a company inactive. Deleting an already-inactive
// company succeeds; only a missing row is an error.
func (s *Store) SoftDeleteCompany(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE companies SET is_active = FALSE, updated_at = ? WHERE "+companyEntity.deletePredicate()),
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
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
