package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HumorTags is the fixed set of humor styles a user may pick from.
var HumorTags = []string{"Sarcastic", "Dark", "Wholesome", "Dry", "Gen Z", "Savage", "Punny"}

// User represents an account stored in PostgreSQL. The handle is unique
// case-insensitively, enforced by a functional index on LOWER(handle) created
// at migration; lookups must go through the repository's lowered comparison
// rather than a plain equality filter.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Handle        string    `json:"handle" gorm:"size:30"`
	Password      string    `json:"-"` // bcrypt hash, never serialized
	Bio           string    `json:"bio" gorm:"default:'This user is too mysterious for a bio.'"`
	ProfilePicURL string    `json:"profilePicUrl"`
	HumorTag      string    `json:"humorTag" gorm:"size:20"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserCompact is the embedded author shape returned inside posts and
// notifications.
type UserCompact struct {
	ID            uint   `json:"id"`
	Handle        string `json:"handle"`
	Bio           string `json:"bio,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
	HumorTag      string `json:"humorTag,omitempty"`
}

// ToCompact strips the user down to the fields safe to embed in other payloads.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:            u.ID,
		Handle:        u.Handle,
		Bio:           u.Bio,
		ProfilePicURL: u.ProfilePicURL,
		HumorTag:      u.HumorTag,
	}
}

// SignupRequest defines the request body for registering a new user
type SignupRequest struct {
	Handle   string `json:"handle" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	HumorTag string `json:"humorTag" validate:"required,humortag"`
}

// LoginRequest defines the request body for authenticating a user
type LoginRequest struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the mutable profile fields. The handle is
// immutable once created.
type UpdateProfileRequest struct {
	Bio           string `json:"bio,omitempty" validate:"omitempty,max=200"`
	ProfilePicURL string `json:"profilePicUrl,omitempty" validate:"omitempty,url"`
	HumorTag      string `json:"humorTag,omitempty" validate:"omitempty,humortag"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}
