package service

import (
	"context"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, t *domain.Task) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *TaskService) UpdateTask(ctx context.Context, t *domain.Task) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	return s.taskRepo.Delete(ctx, ownerID, id)
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return s.taskRepo.FindByID(ctx, ownerID, id)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Task, error) {
	return s.taskRepo.List(ctx, ownerID, opts)
}

func (s *TaskService) CountTasks(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.taskRepo.Count(ctx, ownerID, opts)
}
