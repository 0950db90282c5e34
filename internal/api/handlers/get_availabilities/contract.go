package get_availabilities

import (
	"context"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// ScheduleService интерфейс сервиса расписаний
type ScheduleService interface {
	GetAvailabilities(ctx context.Context, insurance string) ([]*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
