package service

import (
	"context"

	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct {
	mock.Mock
}

var _ repository.Gateway = (*GatewayMock)(nil)

func (m *GatewayMock) Get(ctx context.Context, table string, conditions []repository.Condition) ([]repository.Row, error) {
	args := m.Called(ctx, table, conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.Row), args.Error(1)
}

func (m *GatewayMock) GetWithJoins(ctx context.Context, tables []string, joins []string, conditions []repository.Condition) ([]repository.Row, error) {
	args := m.Called(ctx, tables, joins, conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.Row), args.Error(1)
}

func (m *GatewayMock) Create(ctx context.Context, table string, data map[string]any) (*repository.ExecResult, error) {
	args := m.Called(ctx, table, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.ExecResult), args.Error(1)
}

func (m *GatewayMock) Update(ctx context.Context, table string, data map[string]any, conditions []repository.Condition) (*repository.ExecResult, error) {
	args := m.Called(ctx, table, data, conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.ExecResult), args.Error(1)
}

func (m *GatewayMock) Delete(ctx context.Context, table string, conditions []repository.Condition) (*repository.ExecResult, error) {
	args := m.Called(ctx, table, conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.ExecResult), args.Error(1)
}

type CoordinatorMock struct {
	mock.Mock
}

var _ repository.Coordinator = (*CoordinatorMock)(nil)

func (m *CoordinatorMock) RateProject(ctx context.Context, username string, projectID int64, rating int) error {
	args := m.Called(ctx, username, projectID, rating)
	return args.Error(0)
}

func (m *CoordinatorMock) UpdateAndNotify(ctx context.Context, table string, data map[string]any, conditions []repository.Condition, msg domain.MessageData) error {
	args := m.Called(ctx, table, data, conditions, msg)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *UserRepositoryMock) GetAll(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *UserRepositoryMock) GetByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Account), args.Error(1)
}

type ProjectRepositoryMock struct {
	mock.Mock
}

var _ repository.ProjectRepository = (*ProjectRepositoryMock)(nil)

func (m *ProjectRepositoryMock) GetProjectWithCreator(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) GetProjectsByGitName(ctx context.Context, gitName string) ([]domain.Project, error) {
	args := m.Called(ctx, gitName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Project), args.Error(1)
}

type ApplicationRepositoryMock struct {
	mock.Mock
}

var _ repository.ApplicationRepository = (*ApplicationRepositoryMock)(nil)

func (m *ApplicationRepositoryMock) GetApplicationsForJob(ctx context.Context, jobID int64) ([]domain.Applicant, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Applicant), args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

var _ Notifier = (*NotifierMock)(nil)

func (m *NotifierMock) Send(ctx context.Context, email, title, content string) error {
	args := m.Called(ctx, email, title, content)
	return args.Error(0)
}
