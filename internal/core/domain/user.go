package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

var Roles = []Role{RoleAdmin, RoleMember}

const MinPasswordLength = 8

// User is a login profile. Every record in the system is owned by one.
type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	FullName  *string   `db:"full_name"`
	Password  string    `db:"password"` // bcrypt hashed
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewUser(email, hashedPassword string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lowercases and trims an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials checks the sign-up form before the password is hashed.
func ValidateCredentials(email, password string) error {
	errs := ValidationErrors{}
	requireEmail(errs, "email", email)
	if len(password) < MinPasswordLength {
		errs.Add("password", "must have at least 8 characters")
	}
	return errs.Err()
}

// ValidateRole rejects unknown roles.
func ValidateRole(role Role) error {
	errs := ValidationErrors{}
	requireOneOf(errs, "role", role, Roles)
	return errs.Err()
}
