package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/martijn/lexdesk/internal/adapter/courtlookup"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/observability/logger"
	"github.com/martijn/lexdesk/internal/observability/metrics"
)

var (
	ErrLookupUnavailable = NewServiceError(http.StatusServiceUnavailable, "court lookup is not configured")
	ErrLookupFailed      = NewServiceError(http.StatusBadGateway, "Erro ao consultar processo. Tente novamente.")
)

// ProcessLookup is the remote court-records service.
type ProcessLookup interface {
	Lookup(ctx context.Context, tribunal, numero string) (json.RawMessage, error)
}

// CourtResult is one process found by the lookup.
type CourtResult struct {
	Tribunal        domain.Tribunal
	Numero          string
	NumeroFormatado string
	Data            json.RawMessage
}

type CourtLookupService struct {
	lookup ProcessLookup
}

func NewCourtLookupService(lookup ProcessLookup) *CourtLookupService {
	return &CourtLookupService{lookup: lookup}
}

func (s *CourtLookupService) Tribunals() []domain.Tribunal {
	return domain.Tribunals()
}

// Lookup validates the request and forwards it once. Remote failures come back
// as a ServiceError carrying the remote message.
func (s *CourtLookupService) Lookup(ctx context.Context, alias, numero string) (*CourtResult, error) {
	errs := domain.ValidationErrors{}
	t, ok := domain.FindTribunal(alias)
	if !ok {
		errs.Add("tribunal", "unknown tribunal")
	}
	numero = domain.Digits(numero)
	if numero == "" {
		errs.Add("numero_processo", "is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.lookup.Lookup(ctx, t.Alias, numero)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		var remote *courtlookup.RemoteError
		switch {
		case errors.Is(err, courtlookup.ErrNotConfigured):
			metrics.ObserveCourtLookup(t.Alias, "unavailable", elapsed)
			return nil, ErrLookupUnavailable
		case errors.As(err, &remote) && remote.Status == 0:
			metrics.ObserveCourtLookup(t.Alias, "not_found", elapsed)
			return nil, NewServiceError(http.StatusNotFound, remote.Message)
		case errors.As(err, &remote):
			metrics.ObserveCourtLookup(t.Alias, "error", elapsed)
			return nil, NewServiceError(http.StatusBadGateway, fmt.Sprintf("Erro na consulta: %d", remote.Status))
		default:
			metrics.ObserveCourtLookup(t.Alias, "error", elapsed)
			logger.From(ctx).Warn("court lookup failed", logger.Tribunal(t.Alias), logger.Err(err))
			return nil, ErrLookupFailed
		}
	}

	metrics.ObserveCourtLookup(t.Alias, "found", elapsed)
	logger.From(ctx).Debug("court lookup", logger.Tribunal(t.Alias), zap.Float64("seconds", elapsed))

	return &CourtResult{
		Tribunal:        t,
		Numero:          numero,
		NumeroFormatado: domain.FormatProcessNumber(numero),
		Data:            data,
	}, nil
}
