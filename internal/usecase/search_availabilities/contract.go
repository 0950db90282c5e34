package search_availabilities

import (
	"context"

	"github.com/m04kA/TMS-SearchService/internal/domain"
	"github.com/m04kA/TMS-SearchService/internal/integrations/scheduleapi"
)

// ScheduleAPIClient интерфейс клиента scheduling API
type ScheduleAPIClient interface {
	Health(ctx context.Context) error
	SearchAvailabilities(ctx context.Context, insurance string, opts *scheduleapi.SearchOptions) ([]domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
