package staff

import "time"

// Role distinguishes the two managed staff kinds.
type Role string

const (
	RoleSeller  Role = "seller"
	RoleCourier Role = "courier"
)

// Member represents a seller or courier account managed from the back office.
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MemberForm is the create/update payload. Password is optional on update.
type MemberForm struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Role     Role    `json:"role" validate:"required,oneof=seller courier"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=8"`
	IsActive bool    `json:"is_active"`
}
