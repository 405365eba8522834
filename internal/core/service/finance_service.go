package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// receivedWindowDays is the look-back of FinanceSummary.ReceivedLast30Days.
const receivedWindowDays = 30

var monthAbbrevPTBR = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// FinanceSummary is the billing overview.
type FinanceSummary struct {
	Receivable         float64
	ReceivedLast30Days float64
	OverdueCount       int
}

// RevenuePoint is the paid total of one month.
type RevenuePoint struct {
	Month string // YYYY-MM
	Label string // Jun/25
	Total float64
}

type FinanceService struct {
	entryRepo  repository.EntryRepository
	clientRepo repository.ClientRepository
	clock      *Clock
}

func NewFinanceService(entryRepo repository.EntryRepository, clientRepo repository.ClientRepository, clock *Clock) *FinanceService {
	return &FinanceService{entryRepo: entryRepo, clientRepo: clientRepo, clock: clock}
}

// Today is the civil date used for the overdue projection.
func (s *FinanceService) Today() civildate.Date {
	return s.clock.Today()
}

// prepare stamps the payment date of a paid entry that has none.
func (s *FinanceService) prepare(e *domain.Entry) {
	e.Normalize()
	if e.Status == domain.EntryPaid && e.PaidOn == nil {
		today := s.clock.Today()
		e.PaidOn = &today
	}
}

func (s *FinanceService) CreateEntry(ctx context.Context, e *domain.Entry) error {
	s.prepare(e)
	if err := e.Validate(); err != nil {
		return err
	}
	client, err := checkClient(ctx, s.clientRepo, e.OwnerID, e.ClientID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Create(ctx, e); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	e.ClientName = client.Name
	return nil
}

func (s *FinanceService) UpdateEntry(ctx context.Context, e *domain.Entry) error {
	s.prepare(e)
	if err := e.Validate(); err != nil {
		return err
	}
	client, err := checkClient(ctx, s.clientRepo, e.OwnerID, e.ClientID)
	if err != nil {
		return err
	}

	e.UpdatedAt = time.Now().UTC()
	if err := s.entryRepo.Update(ctx, e); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	e.ClientName = client.Name
	return nil
}

// SetStatus marks an entry paid or pending. Paying without a date uses today.
func (s *FinanceService) SetStatus(ctx context.Context, ownerID, id string, status domain.EntryStatus, paidOn *civildate.Date) (*domain.Entry, error) {
	if status != domain.EntryPaid && status != domain.EntryPending {
		return nil, domain.ValidationErrors{"status": "must be one of: Pago, Pendente"}
	}

	e, err := s.entryRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	day := s.clock.Today()
	if paidOn != nil && !paidOn.IsZero() {
		day = *paidOn
	}
	e.SetStatus(status, day)
	e.UpdatedAt = time.Now().UTC()

	if err := s.entryRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update entry status: %w", err)
	}
	return e, nil
}

func (s *FinanceService) DeleteEntry(ctx context.Context, ownerID, id string) error {
	return s.entryRepo.Delete(ctx, ownerID, id)
}

func (s *FinanceService) GetEntry(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	return s.entryRepo.FindByID(ctx, ownerID, id)
}

func (s *FinanceService) ListEntries(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Entry, error) {
	return s.entryRepo.List(ctx, ownerID, opts)
}

func (s *FinanceService) CountEntries(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.entryRepo.Count(ctx, ownerID, opts)
}

// Summary totals what is still to receive, what came in over the last 30
// days, and how many entries are overdue.
func (s *FinanceService) Summary(ctx context.Context, ownerID string) (*FinanceSummary, error) {
	today := s.clock.Today()

	receivable, err := s.entryRepo.SumPending(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	received, err := s.entryRepo.SumPaidBetween(ctx, ownerID, today.AddDays(-receivedWindowDays), today)
	if err != nil {
		return nil, err
	}
	overdue, err := s.entryRepo.CountOverdue(ctx, ownerID, today)
	if err != nil {
		return nil, err
	}

	return &FinanceSummary{
		Receivable:         receivable,
		ReceivedLast30Days: received,
		OverdueCount:       overdue,
	}, nil
}

var (
	earliestDate = civildate.Date{Year: 1900, Month: time.January, Day: 1}
	latestDate   = civildate.Date{Year: 9999, Month: time.December, Day: 31}
)

// Revenue groups paid entries by payment month. Nil bounds are open.
func (s *FinanceService) Revenue(ctx context.Context, ownerID string, from, to *civildate.Date) ([]RevenuePoint, error) {
	start, end := earliestDate, latestDate
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, domain.ValidationErrors{"ate": "must not be before de"}
	}

	rows, err := s.entryRepo.RevenueByMonth(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	points := make([]RevenuePoint, len(rows))
	for i, row := range rows {
		points[i] = RevenuePoint{Month: row.Month, Label: MonthLabel(row.Month), Total: row.Total}
	}
	return points, nil
}

// MonthLabel renders "2025-06" as "Jun/25".
func MonthLabel(month string) string {
	if len(month) != 7 {
		return month
	}
	m, err := strconv.Atoi(month[5:7])
	if err != nil || m < 1 || m > 12 {
		return month
	}
	return monthAbbrevPTBR[m-1] + "/" + month[2:4]
}
