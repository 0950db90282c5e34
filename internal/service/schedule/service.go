package schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// Service сервис для выдачи расписаний и каталога страховых компаний
type Service struct {
	availabilityRepo AvailabilityRepository
	payerRepo        PayerRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	payerRepo PayerRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		payerRepo:        payerRepo,
		logger:           logger,
	}
}

// GetAvailabilities получает все слоты терапевтов, принимающих страховку.
// Возвращается полный список без фильтрации по дате и времени суток —
// этим занимается клиент.
func (s *Service) GetAvailabilities(ctx context.Context, insurance string) ([]*domain.Availability, error) {
	if insurance == "" {
		s.logger.Warn("GetAvailabilities: empty insurance parameter")
		return nil, fmt.Errorf("%w: insurance is required", ErrInvalidInput)
	}

	slots, err := s.availabilityRepo.GetByInsurance(ctx, insurance)
	if err != nil {
		s.logger.Error("GetAvailabilities: repository error for insurance=%s: %v", insurance, err)
		return nil, fmt.Errorf("%w: GetAvailabilities - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailabilities: found %d availabilities for insurance=%s", len(slots), insurance)
	return slots, nil
}

// ListPayers получает каталог страховых компаний, упорядоченный по имени
func (s *Service) ListPayers(ctx context.Context) ([]domain.InsurancePayer, error) {
	payers, err := s.payerRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListPayers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPayers - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPayers: found %d insurance payers", len(payers))
	return payers, nil
}
