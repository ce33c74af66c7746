// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/service"
	"github.com/sara6310472/Gitlink/internal/validation"
	"github.com/sara6310472/Gitlink/pkg/logger/sl"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log         *slog.Logger
	userService service.UserService
	projService service.ProjectService
	appService  service.ApplicationService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	us service.UserService,
	ps service.ProjectService,
	as service.ApplicationService,
) *Server {
	return &Server{
		log:         log,
		userService: us,
		projService: ps,
		appService:  as,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Get("/users", s.getUsers)
		r.Get("/users/{username}", s.getUser)
		r.Get("/users/role/{role}", s.getUsersByRole)
		r.Put("/users/{id}/status", s.updateUserStatus)
		r.Put("/users/{id}/password", s.changePassword)

		r.Post("/projects/{id}/ratings", s.rateProject)

		r.Get("/jobs/{id}/applications", s.getApplications)
		r.Post("/jobs/{id}/applications", s.apply)
		r.Put("/jobs/{id}/applications/reject", s.rejectApplicant)
	})

	return mux
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.register"

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	account, err := s.userService.RegisterUser(r.Context(), service.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		About:        req.About,
		ProfileImage: req.ProfileImage,
		CVFile:       req.CVFile,
		GitName:      req.GitName,
		Experience:   req.Experience,
		Languages:    req.Languages,
		CompanyName:  req.CompanyName,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Account{"user": account})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.login"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	account, err := s.userService.VerifyLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Account{"user": account})
}

func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUsers"

	users, err := s.userService.GetUsers(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Account{"users": users})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	username := chi.URLParam(r, "username")

	account, err := s.userService.GetUser(r.Context(), username)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Account{"user": account})
}

func (s *Server) getUsersByRole(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUsersByRole"

	role := domain.Role(chi.URLParam(r, "role"))
	if role != domain.RoleDeveloper && role != domain.RoleRecruiter {
		s.respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	users, err := s.userService.GetUsersByRole(r.Context(), role)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Account{"users": users})
}

func (s *Server) updateUserStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateUserStatus"

	userID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req updateStatusRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.userService.UpdateUserStatus(r.Context(), userID, req.Email, req.Blocked); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"result": "status updated"})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.changePassword"

	userID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req changePasswordRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	err = s.userService.ChangeUserPassword(r.Context(), userID, req.CurrentPassword, req.NewPassword, req.Email)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"result": "password changed"})
}

func (s *Server) rateProject(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.rateProject"

	projectID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req rateProjectRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.projService.RateProject(r.Context(), req.Username, projectID, req.Rating); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]string{"result": "rating recorded"})
}

func (s *Server) getApplications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getApplications"

	jobID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	applicants, err := s.appService.GetApplications(r.Context(), jobID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Applicant{"applicants": applicants})
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.apply"

	jobID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req applyRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.appService.Apply(r.Context(), req.UserID, jobID, req.Remark, req.Email); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]string{"result": "application submitted"})
}

func (s *Server) rejectApplicant(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.rejectApplicant"

	jobID, err := s.pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req rejectApplicantRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.appService.RejectApplicant(r.Context(), jobID, req.UserID, req.Email); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"result": "applicant rejected"})
}

// pathID extracts a positive numeric path parameter.
func (s *Server) pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrInvalidRequest, name, raw)
	}

	return id, nil
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		validationErr   *validation.ValidationError
		alreadyRatedErr *apperrors.AlreadyRatedError
		appliedErr      *apperrors.AlreadyAppliedError
		usernameErr     *apperrors.UsernameTakenError
		gitNameErr      *apperrors.GitNameTakenError
	)

	switch {
	case errors.As(err, &validationErr):
		wrappedErr := fmt.Errorf("%w: %s", apperrors.ErrValidation, validationErr.Error())
		s.respondError(w, http.StatusBadRequest, wrappedErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, apperrors.ErrInvalidTable),
		errors.Is(err, apperrors.ErrInvalidColumn),
		errors.Is(err, apperrors.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &alreadyRatedErr):
		s.respondError(w, http.StatusConflict, alreadyRatedErr.Error())
	case errors.As(err, &appliedErr):
		s.respondError(w, http.StatusConflict, appliedErr.Error())
	case errors.As(err, &usernameErr):
		s.respondError(w, http.StatusConflict, usernameErr.Error())
	case errors.As(err, &gitNameErr):
		s.respondError(w, http.StatusConflict, gitNameErr.Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, "resource already exists")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
