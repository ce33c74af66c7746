package http

import (
	"context"

	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/service"
	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) GetUser(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *UserServiceMock) GetUsers(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *UserServiceMock) GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *UserServiceMock) UpdateUserStatus(ctx context.Context, userID int64, email string, blocked bool) error {
	args := m.Called(ctx, userID, email, blocked)
	return args.Error(0)
}

func (m *UserServiceMock) ChangeUserPassword(ctx context.Context, userID int64, currentPassword, newPassword, email string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword, email)
	return args.Error(0)
}

func (m *UserServiceMock) VerifyLogin(ctx context.Context, username, password string) (*domain.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *UserServiceMock) RegisterUser(ctx context.Context, input service.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

type ProjectServiceMock struct {
	mock.Mock
}

var _ service.ProjectService = (*ProjectServiceMock)(nil)

func (m *ProjectServiceMock) RateProject(ctx context.Context, username string, projectID int64, rating int) error {
	args := m.Called(ctx, username, projectID, rating)
	return args.Error(0)
}

type ApplicationServiceMock struct {
	mock.Mock
}

var _ service.ApplicationService = (*ApplicationServiceMock)(nil)

func (m *ApplicationServiceMock) GetApplications(ctx context.Context, jobID int64) ([]domain.Applicant, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Applicant), args.Error(1)
}

func (m *ApplicationServiceMock) Apply(ctx context.Context, userID, jobID int64, remark, email string) error {
	args := m.Called(ctx, userID, jobID, remark, email)
	return args.Error(0)
}

func (m *ApplicationServiceMock) RejectApplicant(ctx context.Context, jobID, developerID int64, email string) error {
	args := m.Called(ctx, jobID, developerID, email)
	return args.Error(0)
}
