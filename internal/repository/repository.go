// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"strconv"

	"github.com/sara6310472/Gitlink/internal/domain"
)

// Condition is a single equality filter applied by gateway operations.
// Field must name a column of the target table; Value is always bound
// as a query parameter.
type Condition struct {
	Field string
	Value any
}

// Row is a generic result row keyed by column name. Typed accessors
// tolerate the driver returning []byte for text and numeric columns.
type Row map[string]any

func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

func (r Row) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func (r Row) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case []byte:
		return string(v) == "true" || string(v) == "t" || string(v) == "1"
	default:
		return false
	}
}

// ExecResult reports the outcome of a write operation. InsertID is set
// only by Create on tables with a generated identifier.
type ExecResult struct {
	InsertID     int64
	AffectedRows int64
}

// Gateway is the generic table gateway: the only component permitted
// to emit SQL for plain CRUD. Every operation validates the table name
// against a fixed allow-list and condition/data columns against the
// table's known columns before any SQL is built.
type Gateway interface {
	// Get returns all active rows of table matching every condition.
	// Empty conditions returns all active rows.
	Get(ctx context.Context, table string, conditions []Condition) ([]Row, error)

	// GetWithJoins builds an inner-join chain over tables; it requires
	// len(joins) == len(tables)-1. The soft-delete filter applies to
	// the first table in the chain only.
	GetWithJoins(ctx context.Context, tables []string, joins []string, conditions []Condition) ([]Row, error)

	// Create inserts one row from a column->value map.
	// It returns apperrors.ErrAlreadyExists on a unique violation.
	Create(ctx context.Context, table string, data map[string]any) (*ExecResult, error)

	// Update fails with apperrors.ErrInvalidInput when data or
	// conditions is empty.
	Update(ctx context.Context, table string, data map[string]any, conditions []Condition) (*ExecResult, error)

	// Delete soft-deletes matching rows by setting is_active to false.
	// It never issues a physical delete and fails on empty conditions.
	Delete(ctx context.Context, table string, conditions []Condition) (*ExecResult, error)
}

// Coordinator groups multi-statement mutations into atomic transactions.
type Coordinator interface {
	// RateProject inserts a rating row and recomputes the project's
	// aggregate rating and rating_count in one transaction. It returns
	// *apperrors.AlreadyRatedError when the user has rated the project
	// before, and wraps any other failure in apperrors.ErrTransactionFailed.
	RateProject(ctx context.Context, username string, projectID int64, rating int) error

	// UpdateAndNotify performs a gateway-shaped UPDATE and inserts a
	// message row for the affected user under one transaction. Either
	// both writes commit or neither does.
	UpdateAndNotify(ctx context.Context, table string, data map[string]any, conditions []Condition, msg domain.MessageData) error
}

// UserRepository resolves role-dependent user shapes.
type UserRepository interface {
	// GetByUsername joins the base user with its password hash and
	// role, then fetches the role-specific extension.
	// It returns apperrors.ErrNotFound when the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// GetAll returns all non-admin users with their role names.
	GetAll(ctx context.Context) ([]domain.Account, error)

	// GetByRole returns all users of the given role with their
	// role-extension data. Role must be developer or recruiter.
	GetByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
}

type ProjectRepository interface {
	// GetProjectWithCreator returns the project joined with the
	// developer that owns it.
	GetProjectWithCreator(ctx context.Context, projectID int64) (*domain.Project, error)

	// GetProjectsByGitName returns all active projects of a developer.
	GetProjectsByGitName(ctx context.Context, gitName string) ([]domain.Project, error)
}

type ApplicationRepository interface {
	// GetApplicationsForJob returns applications for a job joined with
	// the applying developers.
	GetApplicationsForJob(ctx context.Context, jobID int64) ([]domain.Applicant, error)
}
