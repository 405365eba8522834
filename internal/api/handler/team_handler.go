package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

var teamFields = listFields{
	query: []string{"id", "nome", "email", "cargo", "departamento", "status", "data_admissao", "salario"},
	order: []string{"nome", "email", "cargo", "departamento", "status", "data_admissao", "salario"},
}

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Options handles GET /equipe/opcoes
// @Summary Suggested positions, departments and statuses
// @Tags equipe
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TeamOptionsResponse
// @Router /equipe/opcoes [get]
func (h *TeamHandler) Options(c *gin.Context) {
	statuses := make([]string, len(domain.MemberStatuses))
	for i, s := range domain.MemberStatuses {
		statuses[i] = string(s)
	}

	c.JSON(http.StatusOK, dto.TeamOptionsResponse{
		Cargos:        domain.SuggestedPositions,
		Departamentos: domain.SuggestedDepartments,
		Status:        statuses,
	})
}

// CreateMember handles POST /equipe
// @Summary Add a team member
// @Tags equipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TeamMemberRequest true "Member"
// @Success 201 {object} dto.TeamMemberResponse
// @Router /equipe [post]
func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req dto.TeamMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member := domain.NewTeamMember(ownerID(c))
	applyMemberRequest(member, req)

	if err := h.teamService.CreateMember(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(member))
}

// GetMember handles GET /equipe/:id
// @Summary Get a team member
// @Tags equipe
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} dto.TeamMemberResponse
// @Router /equipe/{id} [get]
func (h *TeamHandler) GetMember(c *gin.Context) {
	member, err := h.teamService.GetMember(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// ListMembers handles GET /equipe
// @Summary List team members
// @Tags equipe
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TeamMemberListResponse
// @Router /equipe [get]
func (h *TeamHandler) ListMembers(c *gin.Context) {
	opts, ok := parseListOptions(c, teamFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	members, err := h.teamService.ListMembers(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.teamService.CountMembers(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(members, count, opts, toMemberResponse))
}

// UpdateMember handles PUT /equipe/:id
// @Summary Replace a team member
// @Tags equipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param body body dto.TeamMemberRequest true "Member"
// @Success 200 {object} dto.TeamMemberResponse
// @Router /equipe/{id} [put]
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	var req dto.TeamMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.teamService.GetMember(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyMemberRequest(member, req)
	if err := h.teamService.UpdateMember(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// DeleteMember handles DELETE /equipe/:id
// @Summary Remove a team member
// @Tags equipe
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 204
// @Router /equipe/{id} [delete]
func (h *TeamHandler) DeleteMember(c *gin.Context) {
	if err := h.teamService.DeleteMember(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyMemberRequest(member *domain.TeamMember, req dto.TeamMemberRequest) {
	member.Name = req.Nome
	member.Email = req.Email
	member.Phone = req.Telefone
	member.Position = req.Cargo
	member.Department = req.Departamento
	member.HiredOn = req.DataAdmissao
	member.Salary = req.Salario
	member.Status = domain.MemberStatus(req.Status)
}

func toMemberResponse(member *domain.TeamMember) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		ID:           member.ID,
		Nome:         member.Name,
		Email:        member.Email,
		Telefone:     member.Phone,
		Cargo:        member.Position,
		Departamento: member.Department,
		DataAdmissao: member.HiredOn,
		Salario:      member.Salary,
		Status:       string(member.Status),
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	}
}
