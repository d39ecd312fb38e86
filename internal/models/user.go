package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// roleRank orders roles for hierarchical checks (admin > business > user).
var roleRank = map[Role]int{
	RoleUser:     1,
	RoleBusiness: 2,
	RoleAdmin:    3,
}

// HasAtLeast reports whether the role grants at least the given role's access.
func (r Role) HasAtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"              json:"id"`
	Name           string    `gorm:"size:50;not null"                  json:"name"`
	Email          string    `gorm:"size:254;uniqueIndex;not null"     json:"email"`
	HashedPassword string    `gorm:"not null"                          json:"-"`
	Role           Role      `gorm:"size:16;not null"                  json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ToResponse strips credentials from the record for API serialization.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (u User) ToActivity() map[string]string {
	return map[string]string{
		"id":    u.ID.String(),
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
	}
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

type UserUpdateBody struct {
	Name     string `json:"name"     validate:"omitempty,min=1,max=50"`
	Password string `json:"password" validate:"omitempty,min=6,max=100"`
}
