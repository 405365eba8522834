package service

import (
	"context"
	"sort"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
	"golang.org/x/sync/errgroup"
)

const (
	AgendaHearing = "audiencia"
	AgendaTask    = "tarefa"

	// defaultAgendaDays is the span of the agenda when no end is given.
	defaultAgendaDays = 7
)

// AgendaItem is a hearing or a task placed on the calendar.
type AgendaItem struct {
	ID          string
	Type        string
	Title       string
	Description string
	Date        civildate.Date
	Time        string
	Location    string
	Status      string
	Priority    string
	CaseNumber  string
}

type AgendaService struct {
	hearingRepo repository.HearingRepository
	taskRepo    repository.TaskRepository
	clock       *Clock
}

func NewAgendaService(hearingRepo repository.HearingRepository, taskRepo repository.TaskRepository, clock *Clock) *AgendaService {
	return &AgendaService{hearingRepo: hearingRepo, taskRepo: taskRepo, clock: clock}
}

// Range resolves optional bounds: from defaults to today, to defaults to
// seven days after from.
func (s *AgendaService) Range(from, to *civildate.Date) (civildate.Date, civildate.Date, error) {
	start := s.clock.Today()
	if from != nil {
		start = *from
	}
	end := start.AddDays(defaultAgendaDays)
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return start, end, domain.ValidationErrors{"ate": "must not be before de"}
	}
	return start, end, nil
}

// Agenda merges hearings and tasks within [from, to] ordered by date, then
// time. Tasks have no time and sort after the hearings of their day.
func (s *AgendaService) Agenda(ctx context.Context, ownerID string, from, to civildate.Date) ([]AgendaItem, error) {
	var (
		hearings []*domain.Hearing
		tasks    []*domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hearings, err = s.hearingRepo.ListBetween(gctx, ownerID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListBetween(gctx, ownerID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]AgendaItem, 0, len(hearings)+len(tasks))
	for _, h := range hearings {
		items = append(items, AgendaItem{
			ID:          h.ID,
			Type:        AgendaHearing,
			Title:       "Audiência - " + string(h.Type),
			Description: h.CaseNumber,
			Date:        h.Date,
			Time:        h.Time,
			Location:    h.Location,
			Status:      string(h.Status),
			CaseNumber:  h.CaseNumber,
		})
	}
	for _, t := range tasks {
		items = append(items, AgendaItem{
			ID:          t.ID,
			Type:        AgendaTask,
			Title:       t.Description,
			Description: t.Responsible,
			Date:        t.DueDate,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if (a.Time == "") != (b.Time == "") {
			return a.Time != ""
		}
		return a.Time < b.Time
	})
	return items, nil
}
