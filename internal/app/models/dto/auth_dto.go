package dto

// RegisterStudentRequest is the payload for student registration
type RegisterStudentRequest struct {
	Email       string `json:"email" binding:"required,email" validate:"required,email"`
	Password    string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required" validate:"required"`
	LastName    string `json:"lastName" binding:"required" validate:"required"`
	Phone       string `json:"phone,omitempty"`
	StudentCode string `json:"studentCode" binding:"required" validate:"required"`
	Faculty     string `json:"faculty" binding:"required" validate:"required"`
	Major       string `json:"major" binding:"required" validate:"required"`
}

// RegisterStaffRequest is the payload for teacher/supervisor registration
type RegisterStaffRequest struct {
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	FirstName string `json:"firstName" binding:"required" validate:"required"`
	LastName  string `json:"lastName" binding:"required" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role" binding:"required,oneof=TEACHER SUPERVISOR" validate:"required,oneof=TEACHER SUPERVISOR"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// RefreshTokenRequest is the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`
	RefreshExpiresIn int          `json:"refreshExpiresIn"`
	User             *UserProfile `json:"user,omitempty"`
}

// UserProfile is the profile view of a user
type UserProfile struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Phone       *string `json:"phone,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"isActive"`
	StudentCode *string `json:"studentCode,omitempty"`
	Faculty     *string `json:"faculty,omitempty"`
	Major       *string `json:"major,omitempty"`
}

// UpdateProfileRequest is the payload for profile edits
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Faculty   *string `json:"faculty,omitempty"`
	Major     *string `json:"major,omitempty"`
}
