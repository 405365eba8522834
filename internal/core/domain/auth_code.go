package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuthCode struct {
	Code      string    `db:"code"`
	UserID    string    `db:"user_id"`
	Scopes    []string  `db:"-"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func NewAuthCode(userID string, scopes []string, expirationMinutes int) *AuthCode {
	now := time.Now().UTC()
	return &AuthCode{
		Code:      uuid.New().String(),
		UserID:    userID,
		Scopes:    scopes,
		ExpiresAt: now.Add(time.Duration(expirationMinutes) * time.Minute),
		CreatedAt: now,
	}
}

func (a *AuthCode) IsExpired() bool {
	return time.Now().After(a.ExpiresAt)
}
