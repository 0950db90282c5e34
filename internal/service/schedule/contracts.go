package schedule

import (
	"context"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	// GetByInsurance получает все слоты терапевтов, принимающих страховку
	GetByInsurance(ctx context.Context, payerID string) ([]*domain.Availability, error)
}

// PayerRepository интерфейс репозитория страховых компаний
type PayerRepository interface {
	// List получает все страховые компании, упорядоченные по имени
	List(ctx context.Context) ([]domain.InsurancePayer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
