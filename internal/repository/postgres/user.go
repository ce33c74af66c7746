package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
)

type UserRepository struct {
	gw  repository.Gateway
	log *slog.Logger
}

func NewUserRepository(gw repository.Gateway, log *slog.Logger) *UserRepository {
	return &UserRepository{gw: gw, log: log}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const op = "internal.repository.postgres.GetByUsername"

	if username == "" {
		return nil, fmt.Errorf("%s: %w: username is required", op, apperrors.ErrInvalidInput)
	}

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"users", "passwords", "roles"},
		[]string{
			"users.id = passwords.user_id",
			"users.role_id = roles.role_id",
		},
		[]repository.Condition{{Field: "username", Value: username}},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: user '%s'", op, apperrors.ErrNotFound, username)
	}

	account := accountFromRow(rows[0])

	switch account.Role {
	case domain.RoleDeveloper:
		return r.withRoleData(ctx, account.ID, "developers")
	case domain.RoleRecruiter:
		return r.withRoleData(ctx, account.ID, "recruiters")
	case domain.RoleAdmin:
		return account, nil
	default:
		return nil, fmt.Errorf("%s: invalid user role: '%s'", op, account.Role)
	}
}

// withRoleData refetches the user joined with its role-extension table.
func (r *UserRepository) withRoleData(ctx context.Context, userID int64, roleTable string) (*domain.Account, error) {
	const op = "internal.repository.postgres.withRoleData"

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"users", roleTable, "passwords", "roles"},
		[]string{
			fmt.Sprintf("users.id = %s.user_id", roleTable),
			"users.id = passwords.user_id",
			"users.role_id = roles.role_id",
		},
		[]repository.Condition{{Field: "users.id", Value: userID}},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: user %d has no %s row", op, apperrors.ErrNotFound, userID, roleTable)
	}

	account := accountFromRow(rows[0])
	// The joined row collapses duplicate column names; the extension's
	// user_id wins over users.id, so restore the base identifier.
	account.ID = userID
	attachProfile(account, rows[0])

	return account, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	const op = "internal.repository.postgres.GetAll"

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"users", "passwords", "roles"},
		[]string{
			"users.id = passwords.user_id",
			"users.role_id = roles.role_id AND roles.role <> 'admin'",
		},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accounts := make([]domain.Account, len(rows))
	for i, row := range rows {
		accounts[i] = *accountFromRow(row)
	}

	return accounts, nil
}

func (r *UserRepository) GetByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	const op = "internal.repository.postgres.GetByRole"

	var roleTable string
	switch role {
	case domain.RoleDeveloper:
		roleTable = "developers"
	case domain.RoleRecruiter:
		roleTable = "recruiters"
	default:
		return nil, fmt.Errorf("%s: %w: invalid role '%s'", op, apperrors.ErrInvalidInput, role)
	}

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"users", roleTable, "roles"},
		[]string{
			fmt.Sprintf("users.id = %s.user_id", roleTable),
			"users.role_id = roles.role_id",
		},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accounts := make([]domain.Account, len(rows))
	for i, row := range rows {
		account := accountFromRow(row)
		account.ID = row.Int64("user_id")
		attachProfile(account, row)
		accounts[i] = *account
	}

	return accounts, nil
}

func accountFromRow(row repository.Row) *domain.Account {
	return &domain.Account{
		User: domain.User{
			ID:             row.Int64("id"),
			Username:       row.String("username"),
			Email:          row.String("email"),
			Phone:          row.String("phone"),
			RoleID:         row.Int64("role_id"),
			Role:           domain.Role(row.String("role")),
			About:          row.String("about"),
			ProfileImage:   row.String("profile_image"),
			CVFile:         row.String("cv_file"),
			Status:         row.Bool("status"),
			IsActive:       row.Bool("is_active"),
			HashedPassword: row.String("hashed_password"),
		},
	}
}

func attachProfile(account *domain.Account, row repository.Row) {
	switch account.Role {
	case domain.RoleDeveloper:
		account.Developer = &domain.DeveloperProfile{
			UserID:     account.ID,
			GitName:    row.String("git_name"),
			Experience: row.Int64("experience"),
			Languages:  row.String("languages"),
			Rating:     row.Float64("rating"),
		}
	case domain.RoleRecruiter:
		account.Recruiter = &domain.RecruiterProfile{
			UserID:      account.ID,
			CompanyName: row.String("company_name"),
		}
	}
}
