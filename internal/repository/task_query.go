package repository

import (
	"strings"

	"github.com/google/uuid"

	"tasktracker/internal/model"
)

// BuildTaskQuery composes the WHERE clause for a task listing. The owner
// predicate is always present and always first; callers cannot omit or
// override it. Optional predicates follow in a fixed order: status equality,
// then a case-insensitive substring match over title or description.
//
// The return values plug directly into gorm's Where(conds, args...), but the
// function itself touches no database and is testable in isolation.
func BuildTaskQuery(ownerID uuid.UUID, filter model.TaskFilter) (string, []interface{}) {
	conds := "user_id = ?"
	args := []interface{}{ownerID}

	if filter.Status != "" {
		conds += " AND status = ?"
		args = append(args, filter.Status)
	}

	if filter.Search != "" {
		conds += " AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)"
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	return conds, args
}
