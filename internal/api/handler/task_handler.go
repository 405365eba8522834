package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

var taskFields = listFields{
	query: []string{"id", "descricao", "responsavel", "data_conclusao", "prioridade", "status", "created_at"},
	order: []string{"descricao", "responsavel", "data_conclusao", "prioridade", "status", "created_at"},
}

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /tarefas
// @Summary Create a task
// @Tags tarefas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Router /tarefas [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task := domain.NewTask(ownerID(c))
	applyTaskRequest(task, req)

	if err := h.taskService.CreateTask(c.Request.Context(), task); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetTask handles GET /tarefas/:id
// @Summary Get a task
// @Tags tarefas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Router /tarefas/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// ListTasks handles GET /tarefas
// @Summary List tasks
// @Tags tarefas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TaskListResponse
// @Router /tarefas [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	opts, ok := parseListOptions(c, taskFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	tasks, err := h.taskService.ListTasks(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.taskService.CountTasks(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(tasks, count, opts, toTaskResponse))
}

// UpdateTask handles PUT /tarefas/:id
// @Summary Replace a task
// @Tags tarefas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param body body dto.TaskRequest true "Task"
// @Success 200 {object} dto.TaskResponse
// @Router /tarefas/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyTaskRequest(task, req)
	if err := h.taskService.UpdateTask(c.Request.Context(), task); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DeleteTask handles DELETE /tarefas/:id
// @Summary Delete a task
// @Tags tarefas
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Router /tarefas/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyTaskRequest(task *domain.Task, req dto.TaskRequest) {
	task.Description = req.Descricao
	task.Responsible = req.Responsavel
	task.DueDate = req.DataConclusao
	task.Priority = domain.Priority(req.Prioridade)
	task.Status = domain.TaskStatus(req.Status)
}

func toTaskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:            task.ID,
		Descricao:     task.Description,
		Responsavel:   task.Responsible,
		DataConclusao: task.DueDate,
		Prioridade:    string(task.Priority),
		Status:        string(task.Status),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}
