package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sara6310472/Gitlink/internal/repository"
)

type ProjectService interface {
	// RateProject records one user's rating of a project and refreshes
	// the owning developer's aggregate rating.
	RateProject(ctx context.Context, username string, projectID int64, rating int) error
}

type ProjectServiceImpl struct {
	projects repository.ProjectRepository
	gw       repository.Gateway
	coord    repository.Coordinator
	log      *slog.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	gw repository.Gateway,
	coord repository.Coordinator,
	log *slog.Logger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projects: projects,
		gw:       gw,
		coord:    coord,
		log:      log,
	}
}

// RateProject commits the rating row and the per-project aggregate in
// one transaction, then recomputes the developer-level aggregate as a
// separate step. A crash between the two leaves the developer value
// stale until the next rating; it is a derived display value that is
// fully recomputed every time.
func (s *ProjectServiceImpl) RateProject(ctx context.Context, username string, projectID int64, rating int) error {
	const op = "internal.service.project.RateProject"
	log := s.log.With(slog.String("op", op), slog.Int64("project_id", projectID))

	if err := s.coord.RateProject(ctx, username, projectID, rating); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	project, err := s.projects.GetProjectWithCreator(ctx, projectID)
	if err != nil {
		return fmt.Errorf("%s: failed to resolve project creator: %w", op, err)
	}

	if err := s.updateDeveloperRating(ctx, project.GitName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project rated, developer aggregate refreshed", slog.String("git_name", project.GitName))

	return nil
}

// updateDeveloperRating recomputes a developer's rating as the
// weighted mean over all of their rated projects, rounded to two
// decimals.
func (s *ProjectServiceImpl) updateDeveloperRating(ctx context.Context, gitName string) error {
	const op = "internal.service.project.updateDeveloperRating"

	projects, err := s.projects.GetProjectsByGitName(ctx, gitName)
	if err != nil {
		return fmt.Errorf("%s: failed to load developer projects: %w", op, err)
	}

	var totalRatings float64
	var totalCount int64

	for _, p := range projects {
		if p.RatingCount == 0 {
			continue
		}

		totalRatings += p.Rating * float64(p.RatingCount)
		totalCount += p.RatingCount
	}

	if totalCount == 0 {
		return nil
	}

	userRating := math.Round(totalRatings/float64(totalCount)*100) / 100

	_, err = s.gw.Update(ctx, "developers",
		map[string]any{"rating": userRating},
		[]repository.Condition{{Field: "git_name", Value: gitName}},
	)
	if err != nil {
		return fmt.Errorf("%s: failed to store developer rating: %w", op, err)
	}

	return nil
}
