package domain

import "time"

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// User is the base account record shared by every role variant.
// HashedPassword is populated only by lookups that join the passwords
// table and must never leave the service layer.
type User struct {
	ID             int64  `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	Email          string `db:"email" json:"email"`
	Phone          string `db:"phone" json:"phone,omitempty"`
	RoleID         int64  `db:"role_id" json:"role_id"`
	Role           Role   `db:"role" json:"role"`
	About          string `db:"about" json:"about,omitempty"`
	ProfileImage   string `db:"profile_image" json:"profile_image"`
	CVFile         string `db:"cv_file" json:"cv_file,omitempty"`
	Status         bool   `db:"status" json:"status"`
	IsActive       bool   `db:"is_active" json:"is_active"`
	HashedPassword string `db:"hashed_password" json:"-"`
}

type DeveloperProfile struct {
	UserID     int64   `db:"user_id" json:"user_id"`
	GitName    string  `db:"git_name" json:"git_name"`
	Experience int64   `db:"experience" json:"experience"`
	Languages  string  `db:"languages" json:"languages,omitempty"`
	Rating     float64 `db:"rating" json:"rating"`
}

type RecruiterProfile struct {
	UserID      int64  `db:"user_id" json:"user_id"`
	CompanyName string `db:"company_name" json:"company_name"`
}

// Account is the role-tagged user variant. Role selects which profile
// pointer is set: Developer for developers, Recruiter for recruiters,
// neither for admins.
type Account struct {
	User
	Developer *DeveloperProfile `json:"developer,omitempty"`
	Recruiter *RecruiterProfile `json:"recruiter,omitempty"`
}

type Project struct {
	ID          int64   `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	GitName     string  `db:"git_name" json:"git_name"`
	Name        string  `db:"name" json:"name"`
	URL         string  `db:"url" json:"url,omitempty"`
	Languages   string  `db:"languages" json:"languages,omitempty"`
	Details     string  `db:"details" json:"details,omitempty"`
	ForksCount  int64   `db:"forks_count" json:"forks_count"`
	Rating      float64 `db:"rating" json:"rating"`
	RatingCount int64   `db:"rating_count" json:"rating_count"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationHandled  ApplicationStatus = "handled"
	ApplicationRejected ApplicationStatus = "rejected"
)

type JobApplication struct {
	UserID    int64             `db:"user_id" json:"user_id"`
	JobID     int64             `db:"job_id" json:"job_id"`
	Remark    string            `db:"remark" json:"remark,omitempty"`
	IsTreated ApplicationStatus `db:"is_treated" json:"is_treated"`
	IsActive  bool              `db:"is_active" json:"is_active"`
}

// Applicant is an application row joined with the applying developer.
type Applicant struct {
	JobApplication
	Username   string  `db:"username" json:"username"`
	Email      string  `db:"email" json:"email"`
	GitName    string  `db:"git_name" json:"git_name"`
	Experience int64   `db:"experience" json:"experience"`
	Rating     float64 `db:"rating" json:"rating"`
}

// MessageData is the payload of an in-app notification row. All four
// fields are required by the mutate-and-notify transaction.
type MessageData struct {
	UserID  int64
	Email   string
	Title   string
	Content string
}

type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Email     string    `db:"email" json:"email"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
