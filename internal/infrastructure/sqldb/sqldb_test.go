package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/martijn/lexdesk/internal/api/util"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, email string) *domain.User {
	t.Helper()
	user := domain.NewUser(email, "hash", domain.RoleMember)
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createClient(t *testing.T, db *DB, ownerID, name string) *domain.Client {
	t.Helper()
	client := domain.NewClient(ownerID, civildate.MustParse("2025-01-10"))
	client.Name = name
	client.Email = "contato@example.com"
	require.NoError(t, NewClientRepository(db).Create(context.Background(), client))
	return client
}

func date(s string) civildate.Date {
	return civildate.MustParse(s)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "dsn")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN(":memory:"))
	assert.Equal(t,
		"/var/lib/lexdesk/lexdesk.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		sqliteDSN("/var/lib/lexdesk/lexdesk.db"))
	assert.Equal(t,
		"file:lexdesk.db?cache=shared&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		sqliteDSN("file:lexdesk.db?cache=shared"))
}

func TestFileDatabaseCascadesOnEveryConnection(t *testing.T) {
	db, err := New(DriverSQLite, filepath.Join(t.TempDir(), "lexdesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	user := createUser(t, db, "ana@example.com")
	client := createClient(t, db, user.ID, "Ana Costa")

	c := domain.NewCase(user.ID)
	c.Number = "0001234-56.2024.8.26.0100"
	c.ClientID = client.ID
	c.Subject = "Ação de cobrança"
	c.StartDate = date("2024-03-01")
	require.NoError(t, NewCaseRepository(db).Create(ctx, c))

	e := domain.NewEntry(user.ID)
	e.ClientID = client.ID
	e.Description = "Honorários"
	e.Amount = 500
	e.DueDate = date("2024-04-01")
	require.NoError(t, NewEntryRepository(db).Create(ctx, e))

	// Keep one connection busy so the pool has to open another
	held, err := db.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	second, err := db.Conn(ctx)
	require.NoError(t, err)
	var fk, timeout int
	require.NoError(t, second.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	require.NoError(t, second.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
	require.NoError(t, second.Close())
	assert.Equal(t, 1, fk)
	assert.Equal(t, 5000, timeout)

	var mode string
	require.NoError(t, held.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	require.NoError(t, NewClientRepository(db).Delete(ctx, user.ID, client.ID))

	var cases, entries int
	require.NoError(t, db.Get(&cases, "SELECT COUNT(*) FROM processos WHERE cliente_id = ?", client.ID))
	require.NoError(t, db.Get(&entries, "SELECT COUNT(*) FROM financeiro_lancamentos WHERE cliente_id = ?", client.ID))
	assert.Zero(t, cases, "cases of a deleted client")
	assert.Zero(t, entries, "billing entries of a deleted client")
}

func TestUserRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createUser(t, db, "Ana@Example.com")

	found, err := repo.FindByEmail(ctx, "ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, domain.RoleMember, found.Role)

	dup := domain.NewUser("ana@example.com", "hash", domain.RoleMember)
	err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)

	found.Role = domain.RoleAdmin
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsAdmin())

	count, err := repo.Count(ctx, repository.ListOptions{Search: "example"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrNotFound)
}

func TestAuthCodeAndAPIClientScopes(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ana@example.com")

	codes := NewAuthCodeRepository(db)
	code := domain.NewAuthCode(user.ID, []string{"*"}, 10)
	require.NoError(t, codes.Create(ctx, code))

	found, err := codes.FindByCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, found.Scopes)
	assert.Equal(t, user.ID, found.UserID)

	expired := domain.NewAuthCode(user.ID, nil, -5)
	require.NoError(t, codes.Create(ctx, expired))
	require.NoError(t, codes.DeleteExpired(ctx))
	_, err = codes.FindByCode(ctx, expired.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = codes.FindByCode(ctx, code.Code)
	assert.NoError(t, err)

	clients := NewAPIClientRepository(db)
	client := domain.NewAPIClient("erp", user.ID, "secret-hash", []string{"clientes", "financeiro"})
	require.NoError(t, clients.Create(ctx, client))

	list, err := clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"clientes", "financeiro"}, list[0].Scopes)
	assert.Equal(t, user.ID, list[0].OwnerID)
}

func TestClientRepository_OwnerScope(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	ana := createUser(t, db, "ana@example.com")
	bruno := createUser(t, db, "bruno@example.com")
	client := createClient(t, db, ana.ID, "Ana Costa")

	_, err := repo.FindByID(ctx, bruno.ID, client.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bruno.ID, client.ID), domain.ErrNotFound)

	found, err := repo.FindByID(ctx, ana.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Costa", found.Name)
	assert.Equal(t, "2025-01-10", found.RegisteredOn.String())
	assert.Nil(t, found.LastContact)

	contact := date("2025-06-20")
	found.LastContact = &contact
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.FindByID(ctx, ana.ID, client.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastContact)
	assert.Equal(t, "2025-06-20", found.LastContact.String())

	list, err := repo.List(ctx, bruno.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClientRepository_Filters(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	user := createUser(t, db, "ana@example.com")
	createClient(t, db, user.ID, "Ana Costa")
	createClient(t, db, user.ID, "Bruno Lima")
	createClient(t, db, user.ID, "Carla Souza")

	tests := []struct {
		name string
		opts repository.ListOptions
		want []string
	}{
		{
			name: "search is case insensitive",
			opts: repository.ListOptions{Search: "COSTA"},
			want: []string{"Ana Costa"},
		},
		{
			name: "like filter",
			opts: repository.ListOptions{ListFilter: util.ListFilter{
				Filters: []util.QueryFilter{{Field: "nome", Operator: util.OpLike, Value: "li"}},
			}},
			want: []string{"Bruno Lima"},
		},
		{
			name: "in filter",
			opts: repository.ListOptions{ListFilter: util.ListFilter{
				Filters: []util.QueryFilter{{Field: "nome", Operator: util.OpIn, Value: []string{"Ana Costa", "Carla Souza"}}},
			}},
			want: []string{"Ana Costa", "Carla Souza"},
		},
		{
			name: "date filter accepts timestamps",
			opts: repository.ListOptions{ListFilter: util.ListFilter{
				Filters: []util.QueryFilter{{Field: "data_registro", Operator: util.OpEq, Value: "2025-01-10T23:00:00-03:00"}},
			}},
			want: []string{"Ana Costa", "Bruno Lima", "Carla Souza"},
		},
		{
			name: "ordering and pagination",
			opts: repository.ListOptions{ListFilter: util.ListFilter{
				Order:   []util.OrderClause{{Field: "nome", Direction: util.OrderDesc}},
				Page:    2,
				PerPage: 2,
			}},
			want: []string{"Ana Costa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, user.ID, tt.opts)
			require.NoError(t, err)

			names := make([]string, len(list))
			for i, c := range list {
				names[i] = c.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}

	count, err := repo.Count(ctx, user.ID, repository.ListOptions{Search: "a"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCaseRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	cases := NewCaseRepository(db)
	clients := NewClientRepository(db)

	user := createUser(t, db, "ana@example.com")
	client := createClient(t, db, user.ID, "Ana Costa")

	open := domain.NewCase(user.ID)
	open.Number = "0001234-56.2024.8.26.0100"
	open.ClientID = client.ID
	open.Subject = "Ação de cobrança"
	open.StartDate = date("2024-03-01")
	require.NoError(t, cases.Create(ctx, open))

	closed := domain.NewCase(user.ID)
	closed.Number = "0009999-00.2023.8.26.0100"
	closed.ClientID = client.ID
	closed.Subject = "Inventário"
	closed.Status = domain.CaseClosed
	closed.StartDate = date("2023-01-15")
	require.NoError(t, cases.Create(ctx, closed))

	dup := domain.NewCase(user.ID)
	dup.Number = open.Number
	dup.ClientID = client.ID
	dup.Subject = "Duplicado"
	dup.StartDate = date("2024-03-01")
	assert.ErrorIs(t, cases.Create(ctx, dup), domain.ErrConflict)

	found, err := cases.FindByNumber(ctx, user.ID, open.Number)
	require.NoError(t, err)
	assert.Equal(t, "Ana Costa", found.ClientName)

	list, err := cases.List(ctx, user.ID, repository.ListOptions{Search: "ana costa"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, open.ID, list[0].ID)

	require.NoError(t, clients.RecountActiveCases(ctx, user.ID, client.ID))
	refreshed, err := clients.FindByID(ctx, user.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.ActiveCases)

	byStatus, err := cases.CountByStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byStatus[domain.CaseInProgress])
	assert.Equal(t, 1, byStatus[domain.CaseClosed])
	assert.Equal(t, 0, byStatus[domain.CaseWaiting])

	// Deleting the client cascades to its cases.
	require.NoError(t, clients.Delete(ctx, user.ID, client.ID))
	_, err = cases.FindByID(ctx, user.ID, open.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAgendaRanges(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ana@example.com")

	hearings := NewHearingRepository(db)
	for _, d := range []string{"2025-06-19", "2025-06-20", "2025-06-27", "2025-06-28"} {
		h := domain.NewHearing(user.ID)
		h.CaseNumber = "123"
		h.Date = date(d)
		h.Time = "09:00"
		h.Location = "Fórum"
		require.NoError(t, hearings.Create(ctx, h))
	}

	got, err := hearings.ListBetween(ctx, user.ID, date("2025-06-20"), date("2025-06-27"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-06-20", got[0].Date.String())
	assert.Equal(t, "2025-06-27", got[1].Date.String())

	tasks := NewTaskRepository(db)
	task := domain.NewTask(user.ID)
	task.Description = "Protocolar petição"
	task.Responsible = "Ana"
	task.DueDate = date("2025-06-21")
	require.NoError(t, tasks.Create(ctx, task))

	due, err := tasks.ListBetween(ctx, user.ID, date("2025-06-20"), date("2025-06-27"))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, task.ID, due[0].ID)
}

func TestEntryRepository_Aggregates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	user := createUser(t, db, "ana@example.com")
	client := createClient(t, db, user.ID, "Ana Costa")

	add := func(amount float64, due string, paidOn string) {
		e := domain.NewEntry(user.ID)
		e.ClientID = client.ID
		e.Description = "Honorários"
		e.Amount = amount
		e.DueDate = date(due)
		if paidOn != "" {
			e.SetStatus(domain.EntryPaid, date(paidOn))
		}
		require.NoError(t, repo.Create(ctx, e))
	}

	add(1000, "2025-05-10", "2025-05-09")
	add(500, "2025-06-10", "2025-06-11")
	add(250, "2025-06-15", "2025-06-15")
	add(300, "2025-06-01", "")
	add(200, "2025-07-01", "")

	pending, err := repo.SumPending(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, pending, 0.001)

	paidJune, err := repo.SumPaidBetween(ctx, user.ID, date("2025-06-01"), date("2025-06-30"))
	require.NoError(t, err)
	assert.InDelta(t, 750.0, paidJune, 0.001)

	overdue, err := repo.CountOverdue(ctx, user.ID, date("2025-06-20"))
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	revenue, err := repo.RevenueByMonth(ctx, user.ID, date("2025-01-01"), date("2025-12-31"))
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, "2025-05", revenue[0].Month)
	assert.InDelta(t, 1000.0, revenue[0].Total, 0.001)
	assert.Equal(t, "2025-06", revenue[1].Month)
	assert.InDelta(t, 750.0, revenue[1].Total, 0.001)

	list, err := repo.List(ctx, user.ID, repository.ListOptions{ListFilter: util.ListFilter{
		Filters: []util.QueryFilter{{Field: "status", Operator: util.OpEq, Value: "Pendente"}},
	}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana Costa", list[0].ClientName)
}

func TestTemplateRepository_Defaults(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTemplateRepository(db)

	ana := createUser(t, db, "ana@example.com")
	bruno := createUser(t, db, "bruno@example.com")

	own := domain.NewMessageTemplate(ana.ID)
	own.Title = "Boas-vindas"
	own.Content = "Olá [nome_cliente]"
	require.NoError(t, repo.Create(ctx, own))

	list, err := repo.List(ctx, ana.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, len(defaultTemplates)+1)
	assert.True(t, list[0].IsDefault)
	assert.Nil(t, list[0].OwnerID)

	count, err := repo.Count(ctx, bruno.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(defaultTemplates), count)

	def, err := repo.FindByID(ctx, bruno.ID, defaultTemplates[0].ID)
	require.NoError(t, err)
	def.Title = "changed"
	def.OwnerID = &bruno.ID
	assert.ErrorIs(t, repo.Update(ctx, def), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bruno.ID, def.ID), domain.ErrNotFound)

	_, err = repo.FindByID(ctx, bruno.ID, own.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildFilterClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   util.QueryFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{"eq", util.QueryFilter{Field: "status", Operator: util.OpEq, Value: "Ativo"}, "status = ?", []interface{}{"Ativo"}},
		{"like lowercases", util.QueryFilter{Field: "nome", Operator: util.OpLike, Value: "Ana"}, "LOWER(CAST(nome AS TEXT)) LIKE ?", []interface{}{"%ana%"}},
		{"date input", util.QueryFilter{Field: "data_vencimento", Operator: util.OpGte, Value: "2025-06-20T23:00:00-08:00"}, "data_vencimento >= ?", []interface{}{"2025-06-20"}},
		{"timestamp string read in civil zone", util.QueryFilter{Field: "created_at", Operator: util.OpLt, Value: "2025-11-24T00:00"}, "created_at < ?", []interface{}{time.Date(2025, 11, 24, 3, 0, 0, 0, time.UTC)}},
		{"timestamp instant to UTC", util.QueryFilter{Field: "created_at", Operator: util.OpGte, Value: time.Date(2025, 6, 1, 0, 0, 0, 0, civildate.Default().Location())}, "created_at >= ?", []interface{}{time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)}},
		{"number", util.QueryFilter{Field: "valor", Operator: util.OpGt, Value: 100.0}, "valor > ?", []interface{}{100.0}},
		{"nin", util.QueryFilter{Field: "status", Operator: util.OpNin, Value: []string{"Pago", "Pendente"}}, "status NOT IN (?, ?)", []interface{}{"Pago", "Pendente"}},
		{"isnull", util.QueryFilter{Field: "data_pagamento", Operator: util.OpIsNull}, "data_pagamento IS NULL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := BuildFilterClause(tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestTimestampFiltersUseInstants(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)
	user := createUser(t, db, "ana@example.com")

	task := domain.NewTask(user.ID)
	task.Description = "Protocolar petição"
	task.Responsible = "Marina"
	task.DueDate = date("2025-06-20")
	task.Priority = domain.PriorityHigh
	task.CreatedAt = time.Date(2025, 6, 1, 1, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, task))

	civil := civildate.Default()
	count := func(from, to time.Time) int {
		n, err := repo.Count(ctx, user.ID, repository.ListOptions{ListFilter: util.ListFilter{Filters: []util.QueryFilter{
			{Field: "created_at", Operator: util.OpGte, Value: from},
			{Field: "created_at", Operator: util.OpLt, Value: to},
		}}})
		require.NoError(t, err)
		return n
	}

	// 01:30 UTC on June 1 is still May 31 in São Paulo
	may := civil.Time(date("2025-05-01"))
	june := civil.Time(date("2025-06-01"))
	july := civil.Time(date("2025-07-01"))
	assert.Equal(t, 1, count(may, june))
	assert.Equal(t, 0, count(june, july))

	filters, err := util.ParseQueryString("created_at|gte|2025-05-31,created_at|lt|2025-06-01")
	require.NoError(t, err)
	n, err := repo.Count(ctx, user.ID, repository.ListOptions{ListFilter: util.ListFilter{Filters: filters}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
