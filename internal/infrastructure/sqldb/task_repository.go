package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
)

var taskList = listSpec{
	source:       "tarefas",
	ownerColumn:  "user_id",
	searchFields: []string{"descricao", "responsavel"},
	defaultOrder: "data_conclusao ASC",
}

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tarefas (id, user_id, descricao, responsavel, data_conclusao, prioridade,
			status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		t.ID,
		t.OwnerID,
		t.Description,
		t.Responsible,
		t.DueDate,
		t.Priority,
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.get(ctx, &t, `SELECT * FROM tarefas WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

func (r *taskRepository) Update(ctx context.Context, t *domain.Task) error {
	query := `
		UPDATE tarefas
		SET descricao = ?, responsavel = ?, data_conclusao = ?, prioridade = ?, status = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		t.Description,
		t.Responsible,
		t.DueDate,
		t.Priority,
		t.Status,
		t.UpdatedAt,
		t.ID,
		t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return notFound("task", t.ID)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM tarefas WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return notFound("task", id)
	}
	return nil
}

func (r *taskRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Task, error) {
	query, args := taskList.selectQuery(ownerID, opts)
	tasks := []*domain.Task{}
	if err := r.db.selectAll(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := taskList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func (r *taskRepository) ListBetween(ctx context.Context, ownerID string, from, to civildate.Date) ([]*domain.Task, error) {
	query := `
		SELECT * FROM tarefas
		WHERE user_id = ? AND data_conclusao >= ? AND data_conclusao <= ?
		ORDER BY data_conclusao ASC
	`
	tasks := []*domain.Task{}
	if err := r.db.selectAll(ctx, &tasks, query, ownerID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
