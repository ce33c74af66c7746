package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/repository"
)

// uniqueViolation is the Postgres error code for a unique-constraint
// violation (duplicate rating, duplicate application, taken username).
const uniqueViolation = pq.ErrorCode("23505")

// Gateway implements repository.Gateway over a pooled sqlx connection.
// All input validation happens before a query is built, so a malformed
// call never reaches the database.
type Gateway struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewGateway(db *sqlx.DB, log *slog.Logger) *Gateway {
	return &Gateway{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (g *Gateway) Get(ctx context.Context, table string, conditions []repository.Condition) ([]repository.Row, error) {
	const op = "internal.repository.postgres.Get"

	meta, err := validateTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateConditions(meta, conditions); err != nil {
		return nil, fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	qb := g.sq.Select("*").From(table).Where(sq.Eq{"is_active": true})
	for _, c := range conditions {
		qb = qb.Where(sq.Eq{c.Field: c.Value})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build select query: %w", op, err)
	}

	return g.queryRows(ctx, op, table, query, args)
}

// GetWithJoins builds an inner-join chain over tables. Join expressions
// are ON clauses composed inside the repository layer, never caller
// input. The is_active filter applies to the first table in the chain
// only; rows joined from a soft-deleted secondary table survive.
func (g *Gateway) GetWithJoins(ctx context.Context, tables []string, joins []string, conditions []repository.Condition) ([]repository.Row, error) {
	const op = "internal.repository.postgres.GetWithJoins"

	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: %w: at least one table is required", op, apperrors.ErrInvalidInput)
	}

	if err := validateTables(tables); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(joins) != len(tables)-1 {
		return nil, fmt.Errorf("%s: %w: %d tables require %d join conditions, got %d",
			op, apperrors.ErrInvalidInput, len(tables), len(tables)-1, len(joins))
	}

	if err := validateJoinConditions(tables, conditions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	qb := g.sq.Select("*").From(tables[0])
	for i := 1; i < len(tables); i++ {
		if joins[i-1] == "" {
			return nil, fmt.Errorf("%s: %w: missing join condition between '%s' and '%s'",
				op, apperrors.ErrInvalidInput, tables[i-1], tables[i])
		}

		qb = qb.Join(tables[i] + " ON " + joins[i-1])
	}

	qb = qb.Where(sq.Eq{tables[0] + ".is_active": true})
	for _, c := range conditions {
		qb = qb.Where(sq.Eq{c.Field: c.Value})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build join query: %w", op, err)
	}

	return g.queryRows(ctx, op, tables[0], query, args)
}

func (g *Gateway) Create(ctx context.Context, table string, data map[string]any) (*repository.ExecResult, error) {
	const op = "internal.repository.postgres.Create"

	meta, err := validateTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w: data is required for create", op, apperrors.ErrInvalidInput)
	}

	if err := validateData(meta, data); err != nil {
		return nil, fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	columns := sortedColumns(data)
	values := make([]any, len(columns))
	for i, column := range columns {
		values[i] = data[column]
	}

	qb := g.sq.Insert(table).Columns(columns...).Values(values...)

	if meta.idColumn != "" {
		query, args, err := qb.Suffix("RETURNING " + meta.idColumn).ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
		}

		var id int64
		if err := g.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, g.wrapExecError(op, table, err)
		}

		return &repository.ExecResult{InsertID: id, AffectedRows: 1}, nil
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, g.wrapExecError(op, table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: table '%s': failed to read affected rows: %w", op, table, err)
	}

	return &repository.ExecResult{AffectedRows: affected}, nil
}

func (g *Gateway) Update(ctx context.Context, table string, data map[string]any, conditions []repository.Condition) (*repository.ExecResult, error) {
	const op = "internal.repository.postgres.Update"

	meta, err := validateTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w: data is required for update", op, apperrors.ErrInvalidInput)
	}

	if len(conditions) == 0 {
		return nil, fmt.Errorf("%s: %w: conditions are required for update", op, apperrors.ErrInvalidInput)
	}

	if err := validateData(meta, data); err != nil {
		return nil, fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	if err := validateConditions(meta, conditions); err != nil {
		return nil, fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	qb := g.sq.Update(table)
	for _, column := range sortedColumns(data) {
		qb = qb.Set(column, data[column])
	}

	for _, c := range conditions {
		qb = qb.Where(sq.Eq{c.Field: c.Value})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, g.wrapExecError(op, table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: table '%s': failed to read affected rows: %w", op, table, err)
	}

	return &repository.ExecResult{AffectedRows: affected}, nil
}

// Delete soft-deletes matching rows. It is an UPDATE setting is_active
// to false; no physical DELETE is ever issued through the gateway.
func (g *Gateway) Delete(ctx context.Context, table string, conditions []repository.Condition) (*repository.ExecResult, error) {
	const op = "internal.repository.postgres.Delete"

	meta, err := validateTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(conditions) == 0 {
		return nil, fmt.Errorf("%s: %w: conditions are required for delete", op, apperrors.ErrInvalidInput)
	}

	if err := validateConditions(meta, conditions); err != nil {
		return nil, fmt.Errorf("%s: table '%s': %w", op, table, err)
	}

	qb := g.sq.Update(table).Set("is_active", false)
	for _, c := range conditions {
		qb = qb.Where(sq.Eq{c.Field: c.Value})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, g.wrapExecError(op, table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: table '%s': failed to read affected rows: %w", op, table, err)
	}

	return &repository.ExecResult{AffectedRows: affected}, nil
}

func (g *Gateway) queryRows(ctx context.Context, op, table, query string, args []any) ([]repository.Row, error) {
	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: table '%s': failed to execute query: %w", op, table, err)
	}
	defer rows.Close()

	result := []repository.Row{}
	for rows.Next() {
		row := make(repository.Row)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("%s: table '%s': failed to scan row: %w", op, table, err)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: table '%s': rows iteration failed: %w", op, table, err)
	}

	return result, nil
}

func (g *Gateway) wrapExecError(op, table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: table '%s': %w: %s", op, table, apperrors.ErrAlreadyExists, pqErr.Constraint)
	}

	return fmt.Errorf("%s: table '%s': failed to execute statement: %w", op, table, err)
}

// sortedColumns returns data keys in a stable order so generated SQL
// is deterministic.
func sortedColumns(data map[string]any) []string {
	columns := make([]string, 0, len(data))
	for column := range data {
		columns = append(columns, column)
	}

	sort.Strings(columns)

	return columns
}
