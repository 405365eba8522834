package service

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/infrastructure/sqldb"
	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/stretchr/testify/require"
)

// 09:00 in São Paulo
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *sqldb.DB {
	t.Helper()
	db, err := sqldb.New(sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixedClock() *Clock {
	return FixedClock(civildate.Default(), fixedNow)
}

func date(s string) civildate.Date {
	return civildate.MustParse(s)
}

func ptr[T any](v T) *T {
	return &v
}

func seedUser(t *testing.T, db *sqldb.DB, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := domain.NewUser(email, hash, role)
	require.NoError(t, sqldb.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedClient(t *testing.T, db *sqldb.DB, ownerID, name string, phone *string) *domain.Client {
	t.Helper()
	client := domain.NewClient(ownerID, date("2025-01-10"))
	client.Name = name
	client.Email = "cliente@example.com"
	client.Phone = phone
	require.NoError(t, sqldb.NewClientRepository(db).Create(context.Background(), client))
	return client
}

func seedCase(t *testing.T, db *sqldb.DB, ownerID, clientID, numero string, status domain.CaseStatus) *domain.Case {
	t.Helper()
	c := domain.NewCase(ownerID)
	c.Number = numero
	c.ClientID = clientID
	c.Subject = "Ação de cobrança"
	c.Status = status
	c.StartDate = date("2025-01-15")
	require.NoError(t, NewCaseService(sqldb.NewCaseRepository(db), sqldb.NewClientRepository(db)).CreateCase(context.Background(), c))
	return c
}
