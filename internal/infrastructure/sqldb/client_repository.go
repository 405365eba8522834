package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

var clientList = listSpec{
	source:       "clientes",
	ownerColumn:  "user_id",
	searchFields: []string{"nome", "email", "telefone"},
	defaultOrder: "nome ASC",
}

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clientes (id, user_id, nome, email, telefone, endereco, status,
			processos_ativos, data_registro, ultimo_contato, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		client.ID,
		client.OwnerID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.Status,
		client.ActiveCases,
		client.RegisteredOn,
		client.LastContact,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.get(ctx, &client, `SELECT * FROM clientes WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("client", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clientes
		SET nome = ?, email = ?, telefone = ?, endereco = ?, status = ?,
			data_registro = ?, ultimo_contato = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.Status,
		client.RegisteredOn,
		client.LastContact,
		client.UpdatedAt,
		client.ID,
		client.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if rows == 0 {
		return notFound("client", client.ID)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM clientes WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if rows == 0 {
		return notFound("client", id)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Client, error) {
	query, args := clientList.selectQuery(ownerID, opts)
	clients := []*domain.Client{}
	if err := r.db.selectAll(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := clientList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (r *clientRepository) RecountActiveCases(ctx context.Context, ownerID, clientID string) error {
	query := `
		UPDATE clientes
		SET processos_ativos = (
			SELECT COUNT(*) FROM processos
			WHERE processos.cliente_id = clientes.id AND processos.status != ?
		)
		WHERE id = ? AND user_id = ?
	`
	if _, err := r.db.exec(ctx, query, domain.CaseClosed, clientID, ownerID); err != nil {
		return fmt.Errorf("failed to recount active cases: %w", err)
	}
	return nil
}
