package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
	"github.com/sara6310472/Gitlink/pkg/logger/sl"
)

type ApplicationService interface {
	GetApplications(ctx context.Context, jobID int64) ([]domain.Applicant, error)
	Apply(ctx context.Context, userID, jobID int64, remark, email string) error
	RejectApplicant(ctx context.Context, jobID, developerID int64, email string) error
}

type ApplicationServiceImpl struct {
	apps     repository.ApplicationRepository
	gw       repository.Gateway
	coord    repository.Coordinator
	notifier Notifier
	log      *slog.Logger
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	gw repository.Gateway,
	coord repository.Coordinator,
	notifier Notifier,
	log *slog.Logger,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		apps:     apps,
		gw:       gw,
		coord:    coord,
		notifier: notifier,
		log:      log,
	}
}

func (s *ApplicationServiceImpl) GetApplications(ctx context.Context, jobID int64) ([]domain.Applicant, error) {
	const op = "internal.service.application.GetApplications"

	applicants, err := s.apps.GetApplicationsForJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return applicants, nil
}

// Apply files a job application for a developer. A developer can apply
// to a given job at most once.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, userID, jobID int64, remark, email string) error {
	const op = "internal.service.application.Apply"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID), slog.Int64("job_id", jobID))

	_, err := s.gw.Create(ctx, "job_applications", map[string]any{
		"user_id": userID,
		"job_id":  jobID,
		"remark":  remark,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return &apperrors.AlreadyAppliedError{UserID: userID, JobID: jobID}
		}

		return fmt.Errorf("%s: failed to create application: %w", op, err)
	}

	msg := domain.MessageData{
		UserID:  userID,
		Email:   email,
		Title:   "Application Received!",
		Content: "Your application has been received and is now pending review. Good luck!",
	}

	// Confirmation is best effort; the application itself is committed.
	if _, err := s.gw.Create(ctx, "messages", messageRow(msg)); err != nil {
		log.Error("failed to store confirmation message", sl.Err(err))
	}
	s.notify(ctx, msg)

	log.Info("application submitted")

	return nil
}

// RejectApplicant marks the application rejected and records the
// rejection message in the same transaction.
func (s *ApplicationServiceImpl) RejectApplicant(ctx context.Context, jobID, developerID int64, email string) error {
	const op = "internal.service.application.RejectApplicant"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", developerID), slog.Int64("job_id", jobID))

	msg := domain.MessageData{
		UserID:  developerID,
		Email:   email,
		Title:   "Application Update",
		Content: "Thank you for your interest in this position. After careful review, we have decided to move forward with other candidates.",
	}

	err := s.coord.UpdateAndNotify(ctx, "job_applications",
		map[string]any{"is_treated": string(domain.ApplicationRejected)},
		[]repository.Condition{
			{Field: "job_id", Value: jobID},
			{Field: "user_id", Value: developerID},
		},
		msg,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notify(ctx, msg)

	log.Info("applicant rejected")

	return nil
}

func (s *ApplicationServiceImpl) notify(ctx context.Context, msg domain.MessageData) {
	if s.notifier == nil || msg.Email == "" {
		return
	}

	if err := s.notifier.Send(ctx, msg.Email, msg.Title, msg.Content); err != nil {
		s.log.Error("failed to send notification", sl.Err(err))
	}
}
