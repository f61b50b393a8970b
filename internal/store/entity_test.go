package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListParams
		wantPage  int
		wantLimit int
	}{
		{"zero values", ListParams{}, 1, 5},
		{"negative page", ListParams{Page: -3, Limit: 20}, 1, 20},
		{"negative limit", ListParams{Page: 2, Limit: -1}, 2, 5},
		{"valid", ListParams{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.normalize(5)
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	p := ListParams{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.offset())

	p = ListParams{Page: 1, Limit: 5}
	assert.Equal(t, 0, p.offset())
}

// The count query and the data query must agree on what counts as a match,
// so both are built from the same predicate.
func TestPredicateParity(t *testing.T) {
	for _, e := range []*entityConfig{&companyEntity, &driverEntity} {
		t.Run(e.table, func(t *testing.T) {
			listSQL, listArgs := e.listQuery(ListParams{Page: 2, Limit: 10, Search: "Acme"})
			countSQL, countArgs := e.countQuery("Acme")

			wherePart := listSQL[strings.Index(listSQL, "WHERE"):strings.Index(listSQL, " ORDER BY")]
			assert.Contains(t, countSQL, wherePart)

			// list args = predicate args + limit + offset
			assert.Equal(t, countArgs, listArgs[:len(listArgs)-2])
		})
	}
}

func TestPredicateSearchIsCaseInsensitive(t *testing.T) {
	where, args := companyEntity.activePredicate("ACME")
	assert.Contains(t, where, "LOWER(name) LIKE ?")
	for _, arg := range args {
		assert.Equal(t, "%acme%", arg)
	}
}

func TestPredicateWithoutSearch(t *testing.T) {
	where, args := driverEntity.activePredicate("")
	assert.Equal(t, "is_active = TRUE", where)
	assert.Empty(t, args)
}

// The per-entity behavior flags must be what actually shapes the write
// predicates: companies require ownership on update and delete regardless
// of active state; drivers update without ownership and only delete once.
func TestWritePredicatesFollowEntityFlags(t *testing.T) {
	assert.Equal(t, "id = ? AND is_active = TRUE AND user_id = ?", companyEntity.updatePredicate())
	assert.Equal(t, "id = ?", companyEntity.deletePredicate())

	assert.Equal(t, "id = ? AND is_active = TRUE", driverEntity.updatePredicate())
	assert.Equal(t, "id = ? AND is_active = TRUE", driverEntity.deletePredicate())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 10, 2},
		{7, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}
