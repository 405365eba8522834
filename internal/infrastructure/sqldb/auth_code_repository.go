package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type authCodeRow struct {
	domain.AuthCode
	ScopesJSON string `db:"scopes"`
}

type authCodeRepository struct {
	db *DB
}

func NewAuthCodeRepository(db *DB) repository.AuthCodeRepository {
	return &authCodeRepository{db: db}
}

func (r *authCodeRepository) Create(ctx context.Context, authCode *domain.AuthCode) error {
	scopesJSON, err := json.Marshal(authCode.Scopes)
	if err != nil {
		return fmt.Errorf("failed to marshal scopes: %w", err)
	}

	query := `
		INSERT INTO auth_code (code, user_id, scopes, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.exec(ctx, query,
		authCode.Code,
		authCode.UserID,
		string(scopesJSON),
		authCode.ExpiresAt,
		authCode.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth code: %w", err)
	}
	return nil
}

func (r *authCodeRepository) FindByCode(ctx context.Context, code string) (*domain.AuthCode, error) {
	var row authCodeRow
	err := r.db.get(ctx, &row, `SELECT * FROM auth_code WHERE code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("auth code", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find auth code: %w", err)
	}

	authCode := row.AuthCode
	if err := json.Unmarshal([]byte(row.ScopesJSON), &authCode.Scopes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scopes: %w", err)
	}
	return &authCode, nil
}

func (r *authCodeRepository) Delete(ctx context.Context, code string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM auth_code WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to delete auth code: %w", err)
	}
	if rows == 0 {
		return notFound("auth code", code)
	}
	return nil
}

func (r *authCodeRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.exec(ctx, `DELETE FROM auth_code WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired auth codes: %w", err)
	}
	return nil
}
