package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pendente"
	TaskInProgress TaskStatus = "Em Andamento"
	TaskDone       TaskStatus = "Concluída"
)

var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskDone}

type Task struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"user_id"`
	Description string         `db:"descricao"`
	Responsible string         `db:"responsavel"`
	DueDate     civildate.Date `db:"data_conclusao"`
	Priority    Priority       `db:"prioridade"`
	Status      TaskStatus     `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func NewTask(ownerID string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Task) Normalize() {
	t.Description = strings.TrimSpace(t.Description)
	t.Responsible = strings.TrimSpace(t.Responsible)
	if t.Status == "" {
		t.Status = TaskPending
	}
}

func (t *Task) Validate() error {
	errs := ValidationErrors{}
	requireText(errs, "descricao", t.Description)
	requireText(errs, "responsavel", t.Responsible)
	if t.DueDate.IsZero() {
		errs.Add("data_conclusao", "is required")
	}
	requireOneOf(errs, "prioridade", t.Priority, Priorities)
	requireOneOf(errs, "status", t.Status, TaskStatuses)
	return errs.Err()
}
