package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
	"github.com/sara6310472/Gitlink/pkg/logger/sl"
)

// recomputeProjectRating derives the project aggregate from the full
// set of active rating rows. Aggregates are never patched incrementally.
const recomputeProjectRating = `
UPDATE projects
SET rating = COALESCE((
        SELECT ROUND(AVG(rating)::numeric, 2)
        FROM project_ratings
        WHERE project_id = $1 AND is_active = TRUE
    ), 0),
    rating_count = (
        SELECT COUNT(*)
        FROM project_ratings
        WHERE project_id = $1 AND is_active = TRUE
    )
WHERE id = $1`

// Coordinator implements repository.Coordinator. Atomicity comes from
// database transaction semantics only; conflicts are detected by the
// optimistic insert-then-translate pattern, not by locking.
type Coordinator struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewCoordinator(db *sqlx.DB, log *slog.Logger) *Coordinator {
	return &Coordinator{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (c *Coordinator) RateProject(ctx context.Context, username string, projectID int64, rating int) error {
	const op = "internal.repository.postgres.RateProject"
	log := c.log.With(slog.String("op", op), slog.String("username", username), slog.Int64("project_id", projectID))

	if username == "" || projectID == 0 {
		return fmt.Errorf("%s: %w: username and project id are required", op, apperrors.ErrInvalidInput)
	}

	if rating < 1 || rating > 5 {
		return fmt.Errorf("%s: %w: rating must be between 1 and 5", op, apperrors.ErrInvalidInput)
	}

	err := c.transaction(ctx, op, func(tx *sqlx.Tx) error {
		query, args, err := c.sq.Insert("project_ratings").
			Columns("username", "project_id", "rating").
			Values(username, projectID, rating).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build rating insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return &apperrors.AlreadyRatedError{Username: username, ProjectID: projectID}
			}

			return fmt.Errorf("failed to insert rating: %w", err)
		}

		if _, err := tx.ExecContext(ctx, recomputeProjectRating, projectID); err != nil {
			return fmt.Errorf("failed to recompute project rating: %w", err)
		}

		return nil
	})

	if err != nil {
		var ratedErr *apperrors.AlreadyRatedError
		if errors.As(err, &ratedErr) {
			return ratedErr
		}

		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrTransactionFailed, err)
	}

	log.Info("project rated")

	return nil
}

// UpdateAndNotify performs a gateway-shaped UPDATE and inserts the
// corresponding message row under one transaction, so a state change
// is never observed without its notification record.
func (c *Coordinator) UpdateAndNotify(ctx context.Context, table string, data map[string]any, conditions []repository.Condition, msg domain.MessageData) error {
	const op = "internal.repository.postgres.UpdateAndNotify"
	log := c.log.With(slog.String("op", op), slog.String("table", table), slog.Int64("user_id", msg.UserID))

	meta, err := validateTable(table)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(data) == 0 {
		return fmt.Errorf("%s: %w: data is required for update", op, apperrors.ErrInvalidInput)
	}

	if len(conditions) == 0 {
		return fmt.Errorf("%s: %w: conditions are required for update", op, apperrors.ErrInvalidInput)
	}

	if err := validateData(meta, data); err != nil {
		return fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	if err := validateConditions(meta, conditions); err != nil {
		return fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	if msg.UserID == 0 || msg.Email == "" || msg.Title == "" || msg.Content == "" {
		return fmt.Errorf("%s: %w: complete message data is required (user_id, email, title, content)", op, apperrors.ErrInvalidInput)
	}

	err = c.transaction(ctx, op, func(tx *sqlx.Tx) error {
		qb := c.sq.Update(table)
		for _, column := range sortedColumns(data) {
			qb = qb.Set(column, data[column])
		}

		for _, cond := range conditions {
			qb = qb.Where(sq.Eq{cond.Field: cond.Value})
		}

		updateQuery, updateArgs, err := qb.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("failed to execute update: %w", err)
		}

		insertQuery, insertArgs, err := c.sq.Insert("messages").
			Columns("user_id", "email", "title", "content").
			Values(msg.UserID, msg.Email, msg.Title, msg.Content).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build message insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrTransactionFailed, err)
	}

	log.Info("update and notification committed")

	return nil
}

// transaction runs fn inside a transaction with rollback on every exit
// path. Rollback after a successful commit is a no-op (sql.ErrTxDone).
func (c *Coordinator) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			c.log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
