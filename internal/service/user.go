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
	"golang.org/x/crypto/bcrypt"
)

// Role extension tables are seeded in a fixed order, so role ids are
// stable across environments.
const (
	roleIDDeveloper = 1
	roleIDRecruiter = 2
)

const defaultProfileImage = "profile_images/user.png"

type UserService interface {
	GetUser(ctx context.Context, username string) (*domain.Account, error)
	GetUsers(ctx context.Context) ([]domain.Account, error)
	GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	UpdateUserStatus(ctx context.Context, userID int64, email string, blocked bool) error
	ChangeUserPassword(ctx context.Context, userID int64, currentPassword, newPassword, email string) error
	VerifyLogin(ctx context.Context, username, password string) (*domain.Account, error)
	RegisterUser(ctx context.Context, input RegisterInput) (*domain.Account, error)
}

type RegisterInput struct {
	Username     string
	Password     string
	Email        string
	Phone        string
	RoleID       int64
	About        string
	ProfileImage string
	CVFile       string
	GitName      string
	Experience   int64
	Languages    string
	CompanyName  string
}

type UserServiceImpl struct {
	users    repository.UserRepository
	gw       repository.Gateway
	coord    repository.Coordinator
	notifier Notifier
	log      *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	gw repository.Gateway,
	coord repository.Coordinator,
	notifier Notifier,
	log *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:    users,
		gw:       gw,
		coord:    coord,
		notifier: notifier,
		log:      log,
	}
}

func (s *UserServiceImpl) GetUser(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("users.GetByUsername failed: %w", err)
	}

	return account, nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("users.GetAll failed: %w", err)
	}

	return accounts, nil
}

func (s *UserServiceImpl) GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	accounts, err := s.users.GetByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("users.GetByRole failed: %w", err)
	}

	return accounts, nil
}

// UpdateUserStatus blocks or unblocks an account. The status flip and
// the notification row are committed atomically.
func (s *UserServiceImpl) UpdateUserStatus(ctx context.Context, userID int64, email string, blocked bool) error {
	const op = "internal.service.user.UpdateUserStatus"

	msg := domain.MessageData{
		UserID: userID,
		Email:  email,
	}

	if blocked {
		msg.Title = "Account Blocked"
		msg.Content = "Your account has been blocked due to a violation of our policies. " +
			"Please contact support if you have questions. - The Support Team"
	} else {
		msg.Title = "Account Active"
		msg.Content = "Your account has been reactivated. Welcome back! " +
			"If you have any questions, please contact support. - The Support Team"
	}

	err := s.coord.UpdateAndNotify(ctx, "users",
		map[string]any{"status": !blocked},
		[]repository.Condition{{Field: "id", Value: userID}},
		msg,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notify(ctx, msg)

	return nil
}

func (s *UserServiceImpl) ChangeUserPassword(ctx context.Context, userID int64, currentPassword, newPassword, email string) error {
	const op = "internal.service.user.ChangeUserPassword"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	if userID == 0 || currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%s: %w: all password fields are required", op, apperrors.ErrInvalidInput)
	}

	rows, err := s.gw.Get(ctx, "passwords", []repository.Condition{
		{Field: "user_id", Value: userID},
	})
	if err != nil {
		return fmt.Errorf("%s: failed to fetch stored password: %w", op, err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("%s: %w: user %d", op, apperrors.ErrNotFound, userID)
	}

	stored := rows[0].String("hashed_password")
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%s: %w: current password is incorrect", op, apperrors.ErrInvalidCredentials)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: failed to hash new password: %w", op, err)
	}

	_, err = s.gw.Update(ctx, "passwords",
		map[string]any{"hashed_password": string(hashed)},
		[]repository.Condition{{Field: "user_id", Value: userID}},
	)
	if err != nil {
		return fmt.Errorf("%s: failed to store new password: %w", op, err)
	}

	// Security notification is a side effect, not part of the update.
	msg := domain.MessageData{
		UserID: userID,
		Email:  email,
		Title:  "Password Changed",
		Content: "Your account password was just changed. " +
			"If this wasn't you, contact support immediately. - The Support Team",
	}

	if _, err := s.gw.Create(ctx, "messages", messageRow(msg)); err != nil {
		log.Error("failed to record password change notification", sl.Err(err))
	}

	s.notify(ctx, msg)

	log.Info("password changed")

	return nil
}

func (s *UserServiceImpl) VerifyLogin(ctx context.Context, username, password string) (*domain.Account, error) {
	const op = "internal.service.user.VerifyLogin"

	account, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if account.HashedPassword == "" {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
	}

	account.HashedPassword = ""

	return account, nil
}

// RegisterUser creates the base account, its password row, and the
// role extension, then records a welcome message.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	const op = "internal.service.user.RegisterUser"
	log := s.log.With(slog.String("op", op), slog.String("username", input.Username))

	if input.RoleID == roleIDDeveloper {
		if input.GitName == "" {
			return nil, fmt.Errorf("%s: %w: git name is required for developers", op, apperrors.ErrInvalidInput)
		}

		existing, err := s.gw.Get(ctx, "developers", []repository.Condition{
			{Field: "git_name", Value: input.GitName},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to check git name: %w", op, err)
		}

		if len(existing) > 0 {
			return nil, &apperrors.GitNameTakenError{GitName: input.GitName}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	profileImage := input.ProfileImage
	if profileImage == "" {
		profileImage = defaultProfileImage
	}

	created, err := s.gw.Create(ctx, "users", map[string]any{
		"username":      input.Username,
		"email":         input.Email,
		"phone":         input.Phone,
		"role_id":       input.RoleID,
		"about":         input.About,
		"profile_image": profileImage,
		"cv_file":       input.CVFile,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, &apperrors.UsernameTakenError{Username: input.Username}
		}

		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	userID := created.InsertID

	if _, err := s.gw.Create(ctx, "passwords", map[string]any{
		"user_id":         userID,
		"hashed_password": string(hashed),
	}); err != nil {
		return nil, fmt.Errorf("%s: failed to create password row: %w", op, err)
	}

	account := &domain.Account{
		User: domain.User{
			ID:           userID,
			Username:     input.Username,
			Email:        input.Email,
			Phone:        input.Phone,
			RoleID:       input.RoleID,
			About:        input.About,
			ProfileImage: profileImage,
			CVFile:       input.CVFile,
			Status:       true,
			IsActive:     true,
		},
	}

	switch input.RoleID {
	case roleIDDeveloper:
		if _, err := s.gw.Create(ctx, "developers", map[string]any{
			"user_id":    userID,
			"git_name":   input.GitName,
			"experience": input.Experience,
			"languages":  input.Languages,
		}); err != nil {
			return nil, fmt.Errorf("%s: failed to create developer profile: %w", op, err)
		}

		account.Role = domain.RoleDeveloper
		account.Developer = &domain.DeveloperProfile{
			UserID:     userID,
			GitName:    input.GitName,
			Experience: input.Experience,
			Languages:  input.Languages,
		}
	case roleIDRecruiter:
		if _, err := s.gw.Create(ctx, "recruiters", map[string]any{
			"user_id":      userID,
			"company_name": input.CompanyName,
		}); err != nil {
			return nil, fmt.Errorf("%s: failed to create recruiter profile: %w", op, err)
		}

		account.Role = domain.RoleRecruiter
		account.Recruiter = &domain.RecruiterProfile{
			UserID:      userID,
			CompanyName: input.CompanyName,
		}
	}

	msg := domain.MessageData{
		UserID: userID,
		Email:  input.Email,
		Title:  "Welcome to GitLink!",
		Content: fmt.Sprintf("Hello %s! Welcome to GitLink - the platform connecting "+
			"developers and recruiters. Complete your profile to get started!", input.Username),
	}

	if _, err := s.gw.Create(ctx, "messages", messageRow(msg)); err != nil {
		log.Error("failed to record welcome message", sl.Err(err))
	}

	s.notify(ctx, msg)

	log.Info("user registered", slog.Int64("user_id", userID))

	return account, nil
}

func (s *UserServiceImpl) notify(ctx context.Context, msg domain.MessageData) {
	if s.notifier == nil || msg.Email == "" {
		return
	}

	if err := s.notifier.Send(ctx, msg.Email, msg.Title, msg.Content); err != nil {
		s.log.Error("failed to deliver notification", sl.Err(err))
	}
}

func messageRow(msg domain.MessageData) map[string]any {
	return map[string]any{
		"user_id": msg.UserID,
		"email":   msg.Email,
		"title":   msg.Title,
		"content": msg.Content,
	}
}
