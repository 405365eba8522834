package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// MonthlyRevenue is the paid total of one YYYY-MM month.
type MonthlyRevenue struct {
	Month string  `db:"mes"`
	Total float64 `db:"total"`
}

type EntryRepository interface {
	Create(ctx context.Context, e *domain.Entry) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Entry, error)
	Update(ctx context.Context, e *domain.Entry) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Entry, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)

	// SumPending totals every entry not yet paid.
	SumPending(ctx context.Context, ownerID string) (float64, error)
	// SumPaidBetween totals paid entries with a payment date in [from, to].
	SumPaidBetween(ctx context.Context, ownerID string, from, to civildate.Date) (float64, error)
	// CountOverdue counts pending entries due before today.
	CountOverdue(ctx context.Context, ownerID string, today civildate.Date) (int, error)
	// RevenueByMonth groups paid entries by payment month, ascending.
	RevenueByMonth(ctx context.Context, ownerID string, from, to civildate.Date) ([]MonthlyRevenue, error)
}
