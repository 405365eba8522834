package service

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/infrastructure/sqldb"
	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFinance(t *testing.T) (*FinanceService, *domain.User, *domain.Client) {
	t.Helper()
	db := setupDB(t)
	user := seedUser(t, db, "ana@x.com", "segredo123", domain.RoleMember)
	client := seedClient(t, db, user.ID, "Ana Costa", nil)
	svc := NewFinanceService(sqldb.NewEntryRepository(db), sqldb.NewClientRepository(db), fixedClock())
	return svc, user, client
}

func newEntry(ownerID, clientID, desc string, amount float64, due string) *domain.Entry {
	e := domain.NewEntry(ownerID)
	e.ClientID = clientID
	e.Description = desc
	e.Amount = amount
	e.DueDate = date(due)
	return e
}

func TestFinanceService_CreateStampsPaidOn(t *testing.T) {
	svc, user, client := setupFinance(t)
	ctx := context.Background()

	e := newEntry(user.ID, client.ID, "Honorários iniciais", 1500, "2025-06-01")
	e.Status = domain.EntryPaid
	require.NoError(t, svc.CreateEntry(ctx, e))
	require.NotNil(t, e.PaidOn)
	assert.Equal(t, "2025-06-15", e.PaidOn.String())
	assert.Equal(t, "Ana Costa", e.ClientName)

	other := newEntry(user.ID, "missing", "Consulta", 200, "2025-06-01")
	err := svc.CreateEntry(ctx, other)
	v, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v, "cliente_id")
}

func TestFinanceService_SetStatus(t *testing.T) {
	svc, user, client := setupFinance(t)
	ctx := context.Background()

	e := newEntry(user.ID, client.ID, "Parcela 1", 800, "2025-06-10")
	require.NoError(t, svc.CreateEntry(ctx, e))
	assert.Equal(t, domain.EntryOverdue, e.DisplayStatus(svc.Today()))

	paid, err := svc.SetStatus(ctx, user.ID, e.ID, domain.EntryPaid, ptr(date("2025-06-12")))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", paid.PaidOn.String())
	assert.Equal(t, domain.EntryPaid, paid.DisplayStatus(svc.Today()))

	paid, err = svc.SetStatus(ctx, user.ID, e.ID, domain.EntryPaid, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", paid.PaidOn.String())

	pending, err := svc.SetStatus(ctx, user.ID, e.ID, domain.EntryPending, nil)
	require.NoError(t, err)
	assert.Nil(t, pending.PaidOn)

	_, err = svc.SetStatus(ctx, user.ID, e.ID, domain.EntryOverdue, nil)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.SetStatus(ctx, "someone-else", e.ID, domain.EntryPaid, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinanceService_SummaryAndRevenue(t *testing.T) {
	svc, user, client := setupFinance(t)
	ctx := context.Background()

	create := func(desc string, amount float64, due string, paidOn string) {
		e := newEntry(user.ID, client.ID, desc, amount, due)
		if paidOn != "" {
			e.Status = domain.EntryPaid
			e.PaidOn = ptr(date(paidOn))
		}
		require.NoError(t, svc.CreateEntry(ctx, e))
	}
	create("Parcela vencida", 300, "2025-06-01", "")
	create("Parcela futura", 700, "2025-07-01", "")
	create("Pago recente", 1000, "2025-06-01", "2025-06-05")
	create("Pago em abril", 400, "2025-04-01", "2025-04-20")
	create("Pago há muito", 250, "2024-12-01", "2024-12-10")

	summary, err := svc.Summary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, summary.Receivable)
	assert.Equal(t, 1000.0, summary.ReceivedLast30Days)
	assert.Equal(t, 1, summary.OverdueCount)

	points, err := svc.Revenue(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, RevenuePoint{Month: "2024-12", Label: "Dez/24", Total: 250}, points[0])
	assert.Equal(t, RevenuePoint{Month: "2025-04", Label: "Abr/25", Total: 400}, points[1])
	assert.Equal(t, RevenuePoint{Month: "2025-06", Label: "Jun/25", Total: 1000}, points[2])

	from := date("2025-01-01")
	points, err = svc.Revenue(ctx, user.ID, &from, nil)
	require.NoError(t, err)
	assert.Len(t, points, 2)

	to := date("2024-01-01")
	_, err = svc.Revenue(ctx, user.ID, &from, &to)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestMonthLabel(t *testing.T) {
	tests := map[string]string{
		"2025-01": "Jan/25",
		"2025-09": "Set/25",
		"2030-12": "Dez/30",
		"2025-13": "2025-13",
		"junk":    "junk",
	}
	for in, want := range tests {
		assert.Equal(t, want, MonthLabel(in), in)
	}
}

func TestFinanceService_TodayFollowsCivilZone(t *testing.T) {
	// 01:00 UTC is still the previous day in São Paulo
	clock := FixedClock(civildate.Default(), fixedNow.Add(-11*time.Hour))
	svc := NewFinanceService(nil, nil, clock)
	assert.Equal(t, "2025-06-14", svc.Today().String())
}
