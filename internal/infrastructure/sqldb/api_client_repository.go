package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type apiClientRow struct {
	domain.APIClient
	ScopesJSON string `db:"scopes"`
}

func (row apiClientRow) toDomain() (*domain.APIClient, error) {
	client := row.APIClient
	if err := json.Unmarshal([]byte(row.ScopesJSON), &client.Scopes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scopes: %w", err)
	}
	return &client, nil
}

type apiClientRepository struct {
	db *DB
}

func NewAPIClientRepository(db *DB) repository.APIClientRepository {
	return &apiClientRepository{db: db}
}

func (r *apiClientRepository) Create(ctx context.Context, client *domain.APIClient) error {
	scopesJSON, err := json.Marshal(client.Scopes)
	if err != nil {
		return fmt.Errorf("failed to marshal scopes: %w", err)
	}

	query := `
		INSERT INTO api_client (id, secret, label, user_id, scopes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.exec(ctx, query,
		client.ID,
		client.Secret,
		client.Label,
		client.OwnerID,
		string(scopesJSON),
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *apiClientRepository) FindByID(ctx context.Context, id string) (*domain.APIClient, error) {
	var row apiClientRow
	err := r.db.get(ctx, &row, `SELECT * FROM api_client WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("client", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return row.toDomain()
}

func (r *apiClientRepository) Update(ctx context.Context, client *domain.APIClient) error {
	scopesJSON, err := json.Marshal(client.Scopes)
	if err != nil {
		return fmt.Errorf("failed to marshal scopes: %w", err)
	}

	query := `
		UPDATE api_client
		SET secret = ?, label = ?, scopes = ?, updated_at = ?
		WHERE id = ?
	`
	rows, err := r.db.exec(ctx, query,
		client.Secret,
		client.Label,
		string(scopesJSON),
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if rows == 0 {
		return notFound("client", client.ID)
	}
	return nil
}

func (r *apiClientRepository) Delete(ctx context.Context, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM api_client WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if rows == 0 {
		return notFound("client", id)
	}
	return nil
}

func (r *apiClientRepository) List(ctx context.Context) ([]*domain.APIClient, error) {
	var rows []apiClientRow
	if err := r.db.selectAll(ctx, &rows, `SELECT * FROM api_client ORDER BY label`); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*domain.APIClient, 0, len(rows))
	for _, row := range rows {
		client, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}
