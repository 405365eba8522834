package service

import (
	"context"
	"testing"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/infrastructure/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaService_Range(t *testing.T) {
	svc := NewAgendaService(nil, nil, fixedClock())

	from, to, err := svc.Range(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", from.String())
	assert.Equal(t, "2025-06-22", to.String())

	from, to, err = svc.Range(ptr(date("2025-07-01")), nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", from.String())
	assert.Equal(t, "2025-07-08", to.String())

	_, _, err = svc.Range(ptr(date("2025-07-01")), ptr(date("2025-06-30")))
	v, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v, "ate")
}

func TestAgendaService_MergesAndOrders(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "ana@x.com", "segredo123", domain.RoleMember)
	other := seedUser(t, db, "bia@x.com", "segredo123", domain.RoleMember)

	hearings := NewHearingService(sqldb.NewHearingRepository(db), sqldb.NewCaseRepository(db))
	tasks := NewTaskService(sqldb.NewTaskRepository(db))

	addHearing := func(ownerID, day, hour string) {
		h := domain.NewHearing(ownerID)
		h.CaseNumber = "0001"
		h.Date = date(day)
		h.Time = hour
		h.Location = "Fórum Central"
		h.Type = domain.HearingConciliation
		require.NoError(t, hearings.CreateHearing(ctx, h))
	}
	addTask := func(ownerID, desc, day string) {
		task := domain.NewTask(ownerID)
		task.Description = desc
		task.Responsible = "Dr. Silva"
		task.DueDate = date(day)
		task.Priority = domain.PriorityHigh
		require.NoError(t, tasks.CreateTask(ctx, task))
	}

	addHearing(user.ID, "2025-06-16", "14:00")
	addHearing(user.ID, "2025-06-16", "09:30")
	addTask(user.ID, "Protocolar petição", "2025-06-16")
	addTask(user.ID, "Revisar contrato", "2025-06-15")
	addHearing(user.ID, "2025-06-30", "10:00")
	addHearing(other.ID, "2025-06-16", "08:00")

	svc := NewAgendaService(sqldb.NewHearingRepository(db), sqldb.NewTaskRepository(db), fixedClock())
	from, to, err := svc.Range(nil, nil)
	require.NoError(t, err)

	items, err := svc.Agenda(ctx, user.ID, from, to)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, AgendaTask, items[0].Type)
	assert.Equal(t, "Revisar contrato", items[0].Title)
	assert.Equal(t, "09:30", items[1].Time)
	assert.Equal(t, "Audiência - Conciliação", items[1].Title)
	assert.Equal(t, "14:00", items[2].Time)
	assert.Equal(t, AgendaTask, items[3].Type)
	assert.Equal(t, string(domain.PriorityHigh), items[3].Priority)
}
