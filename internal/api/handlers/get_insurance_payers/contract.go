package get_insurance_payers

import (
	"context"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// ScheduleService интерфейс сервиса расписаний
type ScheduleService interface {
	ListPayers(ctx context.Context) ([]domain.InsurancePayer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
