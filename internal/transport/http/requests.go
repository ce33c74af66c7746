package http

type registerRequest struct {
	Username     string `json:"username" validate:"required,identifier,min=2,max=50"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	RoleID       int64  `json:"role_id" validate:"required,oneof=1 2"`
	About        string `json:"about" validate:"omitempty,max=1000"`
	ProfileImage string `json:"profile_image" validate:"omitempty,max=255"`
	CVFile       string `json:"cv_file" validate:"omitempty,max=255"`
	GitName      string `json:"git_name" validate:"omitempty,identifier,max=100"`
	Experience   int64  `json:"experience" validate:"omitempty,min=0,max=80"`
	Languages    string `json:"languages" validate:"omitempty,max=255"`
	CompanyName  string `json:"company_name" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,identifier,min=2,max=50"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

type updateStatusRequest struct {
	Email   string `json:"email" validate:"required,email,max=100"`
	Blocked bool   `json:"blocked"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1,max=72"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	Email           string `json:"email" validate:"required,email,max=100"`
}

type rateProjectRequest struct {
	Username string `json:"username" validate:"required,identifier,min=2,max=50"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

type applyRequest struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Remark string `json:"remark" validate:"omitempty,max=1000"`
	Email  string `json:"email" validate:"required,email,max=100"`
}

type rejectApplicantRequest struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Email  string `json:"email" validate:"required,email,max=100"`
}
