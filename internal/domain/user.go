package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = 1
	RoleManager    = 2
	RoleInstructor = 3
)

type User struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Lastname         string     `json:"lastname"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"password,omitempty"`
	Active           bool       `json:"active"`
	RoleID           int        `json:"role_id"`
	Deleted          bool       `json:"deleted"`
	DeletedAt        *time.Time `json:"deleted_at"`
	LinkedModalities []Modality `json:"linked_modalities"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id"`
	Deleted  *bool   `json:"deleted"`
}

type Claims struct {
	UserID         int
	UserName       string
	UserLastname   string
	UserEmail      string
	UserActive     bool
	UserRoleID     int
	UserModalities []Modality
	jwt.RegisteredClaims
}

// CanAccessModality indica se o usuário pode consultar os contratos da modalidade.
// Professores ficam restritos às modalidades vinculadas.
func (c *Claims) CanAccessModality(m Modality) bool {
	if c == nil {
		return false
	}
	if c.UserRoleID != RoleInstructor {
		return true
	}
	for _, linked := range c.UserModalities {
		if linked == m {
			return true
		}
	}
	return false
}
