package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@school.edu.tr"`           // User's email address
	Password    string     `json:"-" db:"password"`                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                   // User's last name
	Phone       *string    `json:"phone,omitempty" db:"phone" example:"+905551112233"`      // Contact phone (nullable)
	Role        RoleType   `json:"role" db:"role" example:"STUDENT"`                        // User's role
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                  // Whether the user account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	// Student-specific attributes (NULL for other roles)
	StudentCode *string `json:"studentCode,omitempty" db:"student_code" example:"20210001"`
	Faculty     *string `json:"faculty,omitempty" db:"faculty" example:"Faculty of Education"`
	Major       *string `json:"major,omitempty" db:"major" example:"Mathematics Education"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RefreshToken defines a persisted refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
