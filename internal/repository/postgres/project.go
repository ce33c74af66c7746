package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
)

type ProjectRepository struct {
	gw  repository.Gateway
	log *slog.Logger
}

func NewProjectRepository(gw repository.Gateway, log *slog.Logger) *ProjectRepository {
	return &ProjectRepository{gw: gw, log: log}
}

// GetProjectWithCreator loads a project joined onto its developer row.
// The join collapses duplicate column names with the developers values
// winning, so Rating, Languages and IsActive on the result carry the
// developer's columns; callers read the creator fields (GitName) and
// the restored ID, not the project aggregate.
func (r *ProjectRepository) GetProjectWithCreator(ctx context.Context, projectID int64) (*domain.Project, error) {
	const op = "internal.repository.postgres.GetProjectWithCreator"

	if projectID == 0 {
		return nil, fmt.Errorf("%s: %w: project id is required", op, apperrors.ErrInvalidInput)
	}

	rows, err := r.gw.GetWithJoins(ctx,
		[]string{"projects", "developers"},
		[]string{"projects.git_name = developers.git_name"},
		[]repository.Condition{{Field: "id", Value: projectID}},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: project %d", op, apperrors.ErrNotFound, projectID)
	}

	project := projectFromRow(rows[0])
	project.ID = projectID

	return project, nil
}

func (r *ProjectRepository) GetProjectsByGitName(ctx context.Context, gitName string) ([]domain.Project, error) {
	const op = "internal.repository.postgres.GetProjectsByGitName"

	if gitName == "" {
		return nil, fmt.Errorf("%s: %w: git name is required", op, apperrors.ErrInvalidInput)
	}

	rows, err := r.gw.Get(ctx, "projects", []repository.Condition{
		{Field: "git_name", Value: gitName},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projects := make([]domain.Project, len(rows))
	for i, row := range rows {
		projects[i] = *projectFromRow(row)
	}

	return projects, nil
}

func projectFromRow(row repository.Row) *domain.Project {
	return &domain.Project{
		ID:          row.Int64("id"),
		Username:    row.String("username"),
		GitName:     row.String("git_name"),
		Name:        row.String("name"),
		URL:         row.String("url"),
		Languages:   row.String("languages"),
		Details:     row.String("details"),
		ForksCount:  row.Int64("forks_count"),
		Rating:      row.Float64("rating"),
		RatingCount: row.Int64("rating_count"),
		IsActive:    row.Bool("is_active"),
	}
}
