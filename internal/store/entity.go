package store

import (
	"fmt"
	"strings"

	"github.com/fleetdesk-io/fleetdesk/internal/models"
)

// entityConfig parameterizes the repository pattern shared by companies and
// drivers. The behavioral flags make the source system's asymmetries
// explicit configuration instead of accidents of copy-paste.
type entityConfig struct {
	table         string
	selectColumns string
	searchColumns []string
	defaultLimit  int
	orderBy       string

	// ownershipUpdate requires the updating user to own the record; a
	// mismatch is indistinguishable from a missing record.
	ownershipUpdate bool

	// idempotentDelete allows soft-deleting an already-inactive record.
	idempotentDelete bool
}

// ListParams carries pagination and search input for List operations.
// Non-positive values are replaced by defaults during normalization.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// normalize applies the entity's defaults. Page defaults to 1, limit to the
// entity's default page size.
func (p *ListParams) normalize(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
}

// offset computes the row offset for the normalized page/limit.
func (p *ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// activePredicate builds the WHERE clause restricting to active rows and,
// when a search term is given, to case-insensitive substring matches over
// the entity's search columns. Both the data query and the count query are
// built from this single function so their predicates cannot drift apart.
func (e *entityConfig) activePredicate(search string) (string, []interface{}) {
	where := "is_active = TRUE"
	var args []interface{}

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(e.searchColumns))
		for i, col := range e.searchColumns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args = append(args, term)
		}
		where += " AND (" + strings.Join(conds, " OR ") + ")"
	}

	return where, args
}

// updatePredicate returns the WHERE clause for partial updates. Updates
// only ever touch active rows; entities with ownershipUpdate additionally
// require the caller to own the record, with the owner id as a trailing
// query argument.
func (e *entityConfig) updatePredicate() string {
	where := "id = ? AND is_active = TRUE"
	if e.ownershipUpdate {
		where += " AND user_id = ?"
	}
	return where
}

// deletePredicate returns the WHERE clause for soft deletes. Entities with
// idempotentDelete match the row regardless of its active state; the rest
// only match active rows, so a repeated delete reports a missing record.
func (e *entityConfig) deletePredicate() string {
	if e.idempotentDelete {
		return "id = ?"
	}
	return "id = ? AND is_active = TRUE"
}

// listQuery returns the paginated data query. Limit and offset are appended
// to the predicate args.
func (e *entityConfig) listQuery(params ListParams) (string, []interface{}) {
	where, args := e.activePredicate(params.Search)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		e.selectColumns, e.table, where, e.orderBy,
	)
	args = append(args, params.Limit, params.offset())
	return query, args
}

// countQuery returns the total-count query over the identical predicate.
func (e *entityConfig) countQuery(search string) (string, []interface{}) {
	where, args := e.activePredicate(search)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", e.table, where), args
}

// totalPages computes ceil(total/limit) for the pagination envelope.
func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPagination builds the pagination metadata for a list response from
// the normalized params and the predicate-matching total.
func NewPagination(total int, params ListParams) models.Pagination {
	return models.Pagination{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages(total, params.Limit),
	}
}
