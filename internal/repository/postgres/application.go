package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
)

type ApplicationRepository struct {
	gw  repository.Gateway
	log *slog.Logger
}

func NewApplicationRepository(gw repository.Gateway, log *slog.Logger) *ApplicationRepository {
	return &ApplicationRepository{gw: gw, log: log}
}

func (r *ApplicationRepository) GetApplicationsForJob(ctx context.Context, jobID int64) ([]domain.Applicant, error) {
	const op = "internal.repository.postgres.GetApplicationsForJob"

	if jobID == 0 {
		return nil, fmt.Errorf("%s: %w: job id is required", op, apperrors.ErrInvalidInput)
	}

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"users", "developers", "job_applications", "roles"},
		[]string{
			"users.id = developers.user_id",
			"users.id = job_applications.user_id",
			"users.role_id = roles.role_id",
		},
		[]repository.Condition{{Field: "job_id", Value: jobID}},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	applicants := make([]domain.Applicant, len(rows))
	for i, row := range rows {
		applicants[i] = domain.Applicant{
			JobApplication: domain.JobApplication{
				UserID:    row.Int64("user_id"),
				JobID:     row.Int64("job_id"),
				Remark:    row.String("remark"),
				IsTreated: domain.ApplicationStatus(row.String("is_treated")),
				IsActive:  row.Bool("is_active"),
			},
			Username:   row.String("username"),
			Email:      row.String("email"),
			GitName:    row.String("git_name"),
			Experience: row.Int64("experience"),
			Rating:     row.Float64("rating"),
		}
	}

	return applicants, nil
}
