package postgres

import (
	"fmt"
	"strings"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/repository"
)

// tableMeta describes one allow-listed table: the set of columns that
// may appear in conditions and data maps, and the generated id column
// returned by Create (empty for tables keyed by user_id or a composite
// primary key).
type tableMeta struct {
	idColumn string
	columns  map[string]struct{}
}

func cols(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// allowedTables is the fixed set of resources the gateway may touch.
// Any other table name is rejected before SQL is built.
var allowedTables = map[string]tableMeta{
	"roles": {
		idColumn: "role_id",
		columns:  cols("role_id", "role", "is_active", "created_at", "updated_at"),
	},
	"users": {
		idColumn: "id",
		columns: cols("id", "username", "email", "phone", "role_id", "about",
			"profile_image", "cv_file", "status", "is_active", "created_at", "updated_at"),
	},
	"passwords": {
		columns: cols("user_id", "hashed_password", "is_active", "created_at", "updated_at"),
	},
	"developers": {
		columns: cols("user_id", "git_name", "experience", "languages", "rating",
			"is_active", "created_at", "updated_at"),
	},
	"recruiters": {
		columns: cols("user_id", "company_name", "is_active", "created_at", "updated_at"),
	},
	"projects": {
		idColumn: "id",
		columns: cols("id", "username", "git_name", "name", "url", "languages",
			"details", "forks_count", "rating", "rating_count", "is_active",
			"created_at", "updated_at"),
	},
	"project_ratings": {
		idColumn: "id",
		columns: cols("id", "username", "project_id", "rating", "is_active",
			"created_at", "updated_at"),
	},
	"jobs": {
		idColumn: "id",
		columns: cols("id", "username", "title", "company_name", "details",
			"requirements", "experience", "languages", "views", "is_seized",
			"is_active", "created_at", "updated_at"),
	},
	"job_applications": {
		columns: cols("user_id", "job_id", "remark", "is_treated", "is_active",
			"created_at", "updated_at"),
	},
	"messages": {
		idColumn: "id",
		columns: cols("id", "user_id", "email", "title", "content", "is_read",
			"is_active", "created_at", "updated_at"),
	},
}

func validateTable(table string) (tableMeta, error) {
	meta, ok := allowedTables[table]
	if !ok {
		return tableMeta{}, fmt.Errorf("%w: '%s'", apperrors.ErrInvalidTable, table)
	}

	return meta, nil
}

func validateTables(tables []string) error {
	for _, t := range tables {
		if _, err := validateTable(t); err != nil {
			return err
		}
	}

	return nil
}

func validateConditions(meta tableMeta, conditions []repository.Condition) error {
	for _, c := range conditions {
		if c.Field == "" || c.Value == nil {
			return fmt.Errorf("%w: condition requires both field and value", apperrors.ErrInvalidInput)
		}

		if _, ok := meta.columns[c.Field]; !ok {
			return fmt.Errorf("%w: '%s'", apperrors.ErrInvalidColumn, c.Field)
		}
	}

	return nil
}

// validateJoinConditions checks condition fields against the union of
// the joined tables' columns. A field may be qualified as
// "table.column", in which case the table must be part of the chain.
func validateJoinConditions(tables []string, conditions []repository.Condition) error {
	for _, c := range conditions {
		if c.Field == "" || c.Value == nil {
			return fmt.Errorf("%w: condition requires both field and value", apperrors.ErrInvalidInput)
		}

		table, column, qualified := strings.Cut(c.Field, ".")
		if qualified {
			meta, ok := allowedTables[table]
			if !ok || !contains(tables, table) {
				return fmt.Errorf("%w: '%s'", apperrors.ErrInvalidColumn, c.Field)
			}

			if _, ok := meta.columns[column]; !ok {
				return fmt.Errorf("%w: '%s'", apperrors.ErrInvalidColumn, c.Field)
			}

			continue
		}

		var known bool
		for _, t := range tables {
			if _, ok := allowedTables[t].columns[c.Field]; ok {
				known = true
				break
			}
		}

		if !known {
			return fmt.Errorf("%w: '%s'", apperrors.ErrInvalidColumn, c.Field)
		}
	}

	return nil
}

func validateData(meta tableMeta, data map[string]any) error {
	for column := range data {
		if _, ok := meta.columns[column]; !ok {
			return fmt.Errorf("%w: '%s'", apperrors.ErrInvalidColumn, column)
		}
	}

	return nil
}

func contains(tables []string, table string) bool {
	for _, t := range tables {
		if t == table {
			return true
		}
	}

	return false
}
