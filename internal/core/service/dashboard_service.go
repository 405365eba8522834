package service

import (
	"context"

	"github.com/martijn/lexdesk/internal/api/util"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentCases  = 4
	dashboardNextHearings = 3
)

// Productivity holds whole percentages, 0 when there is nothing to measure.
type Productivity struct {
	CasesClosed  int
	HearingsHeld int
	TasksDone    int
}

// MonthStats counts this month's case activity.
type MonthStats struct {
	Won        int
	InProgress int
	New        int
}

type Dashboard struct {
	TotalClients  int
	TotalCases    int
	HearingsToday int

	RevenueMonth float64
	RevenueTotal float64
	PendingTotal float64

	RecentCases  []*domain.Case
	NextHearings []*domain.Hearing

	Productivity Productivity
	Month        MonthStats
}

type DashboardService struct {
	clientRepo  repository.ClientRepository
	caseRepo    repository.CaseRepository
	hearingRepo repository.HearingRepository
	taskRepo    repository.TaskRepository
	entryRepo   repository.EntryRepository
	clock       *Clock
}

func NewDashboardService(
	clientRepo repository.ClientRepository,
	caseRepo repository.CaseRepository,
	hearingRepo repository.HearingRepository,
	taskRepo repository.TaskRepository,
	entryRepo repository.EntryRepository,
	clock *Clock,
) *DashboardService {
	return &DashboardService{
		clientRepo:  clientRepo,
		caseRepo:    caseRepo,
		hearingRepo: hearingRepo,
		taskRepo:    taskRepo,
		entryRepo:   entryRepo,
		clock:       clock,
	}
}

func filter(field string, op util.QueryOperator, value interface{}) util.QueryFilter {
	return util.QueryFilter{Field: field, Operator: op, Value: value}
}

func where(filters ...util.QueryFilter) repository.ListOptions {
	return repository.ListOptions{ListFilter: util.ListFilter{Filters: filters}}
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*100 + whole/2) / whole
}

// Load gathers every figure concurrently. The first failing query fails the
// whole dashboard.
func (s *DashboardService) Load(ctx context.Context, ownerID string) (*Dashboard, error) {
	today := s.clock.Today()
	first, last := today.FirstOfMonth(), today.LastOfMonth()
	todayStr, firstStr, lastStr := today.String(), first.String(), last.String()

	// created_at is a UTC timestamp; month bounds are civil midnights.
	monthStart := s.clock.Instant(first)
	monthEnd := s.clock.Instant(last.AddDays(1))
	createdThisMonth := []util.QueryFilter{
		filter("created_at", util.OpGte, monthStart),
		filter("created_at", util.OpLt, monthEnd),
	}
	hearingsThisMonth := []util.QueryFilter{
		filter("data", util.OpGte, firstStr),
		filter("data", util.OpLte, lastStr),
	}

	var d Dashboard
	var closedAll, hearingsMonth, heldMonth, tasksMonth, tasksDoneMonth int

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, fn func(context.Context, string, repository.ListOptions) (int, error), opts repository.ListOptions) {
		g.Go(func() error {
			n, err := fn(gctx, ownerID, opts)
			*dst = n
			return err
		})
	}

	count(&d.TotalClients, s.clientRepo.Count, where())
	count(&d.TotalCases, s.caseRepo.Count, where())
	count(&d.HearingsToday, s.hearingRepo.Count, where(filter("data", util.OpEq, todayStr)))

	count(&closedAll, s.caseRepo.Count, where(filter("status", util.OpEq, string(domain.CaseClosed))))
	count(&hearingsMonth, s.hearingRepo.Count, where(hearingsThisMonth...))
	count(&heldMonth, s.hearingRepo.Count, where(append(hearingsThisMonth,
		filter("status", util.OpEq, string(domain.HearingHeld)))...))
	count(&tasksMonth, s.taskRepo.Count, where(createdThisMonth...))
	count(&tasksDoneMonth, s.taskRepo.Count, where(append(createdThisMonth,
		filter("status", util.OpEq, string(domain.TaskDone)))...))

	count(&d.Month.Won, s.caseRepo.Count, where(append(createdThisMonth,
		filter("status", util.OpEq, string(domain.CaseClosed)))...))
	count(&d.Month.InProgress, s.caseRepo.Count, where(filter("status", util.OpEq, string(domain.CaseInProgress))))
	count(&d.Month.New, s.caseRepo.Count, where(createdThisMonth...))

	g.Go(func() error {
		var err error
		d.RevenueMonth, err = s.entryRepo.SumPaidBetween(gctx, ownerID, first, last)
		return err
	})
	g.Go(func() error {
		var err error
		d.RevenueTotal, err = s.entryRepo.SumPaidBetween(gctx, ownerID, earliestDate, latestDate)
		return err
	})
	g.Go(func() error {
		var err error
		d.PendingTotal, err = s.entryRepo.SumPending(gctx, ownerID)
		return err
	})

	g.Go(func() error {
		opts := where()
		opts.Order = []util.OrderClause{{Field: "created_at", Direction: util.OrderDesc}}
		opts.Page, opts.PerPage = 1, dashboardRecentCases
		var err error
		d.RecentCases, err = s.caseRepo.List(gctx, ownerID, opts)
		return err
	})
	g.Go(func() error {
		opts := where(filter("data", util.OpGte, todayStr))
		opts.Order = []util.OrderClause{
			{Field: "data", Direction: util.OrderAsc},
			{Field: "hora", Direction: util.OrderAsc},
		}
		opts.Page, opts.PerPage = 1, dashboardNextHearings
		var err error
		d.NextHearings, err = s.hearingRepo.List(gctx, ownerID, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Productivity = Productivity{
		CasesClosed:  percent(closedAll, d.TotalCases),
		HearingsHeld: percent(heldMonth, hearingsMonth),
		TasksDone:    percent(tasksDoneMonth, tasksMonth),
	}
	return &d, nil
}
