package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-SearchService/internal/domain"
	"github.com/m04kA/TMS-SearchService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами терапевтов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByInsurance получает все слоты терапевтов, принимающих указанную
// страховку, вместе с полным списком страховок каждого терапевта.
// Дата и время суток здесь не фильтруются — это зона ответственности клиента.
func (r *Repository) GetByInsurance(ctx context.Context, payerID string) ([]*domain.Availability, error) {
	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.therapist_id",
		"a.start_time",
		"a.end_time",
		"t.name",
	).
		From("availabilities a").
		Join("therapists t ON t.id = a.therapist_id").
		Join("therapist_insurance ti ON ti.therapist_id = t.id").
		Where(squirrel.Eq{"ti.insurance_payer_id": payerID}).
		OrderBy("a.start_time ASC, a.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByInsurance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInsurance - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Availability, 0)
	therapistIDs := make([]string, 0)
	seenTherapists := make(map[string]struct{})

	for rows.Next() {
		var slot domain.Availability
		if err := rows.Scan(
			&slot.ID,
			&slot.TherapistID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Therapist.Name,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByInsurance - scan availability: %v", ErrScanRow, err)
		}

		slot.Therapist.ID = slot.TherapistID
		slots = append(slots, &slot)

		if _, ok := seenTherapists[slot.TherapistID]; !ok {
			seenTherapists[slot.TherapistID] = struct{}{}
			therapistIDs = append(therapistIDs, slot.TherapistID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByInsurance - iterate rows: %v", ErrScanRow, err)
	}

	if len(slots) == 0 {
		return slots, nil
	}

	// Подгружаем полные списки страховок терапевтов (аналог joinedload):
	// клиенту нужен весь упорядоченный набор, а не только выбранная страховка
	payersByTherapist, err := r.getPayersForTherapists(ctx, therapistIDs)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		slot.Therapist.InsurancePayers = payersByTherapist[slot.TherapistID]
	}

	return slots, nil
}

// getPayersForTherapists получает страховки для набора терапевтов одним запросом
func (r *Repository) getPayersForTherapists(
	ctx context.Context,
	therapistIDs []string,
) (map[string][]domain.InsurancePayer, error) {
	query, args, err := psqlbuilder.Select(
		"ti.therapist_id",
		"p.id",
		"p.name",
	).
		From("therapist_insurance ti").
		Join("insurance_payers p ON p.id = ti.insurance_payer_id").
		Where(squirrel.Eq{"ti.therapist_id": therapistIDs}).
		OrderBy("ti.therapist_id ASC, p.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPayersForTherapists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPayersForTherapists - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.InsurancePayer, len(therapistIDs))
	for rows.Next() {
		var therapistID string
		var payer domain.InsurancePayer

		if err := rows.Scan(&therapistID, &payer.ID, &payer.Name); err != nil {
			return nil, fmt.Errorf("%w: getPayersForTherapists - scan payer: %v", ErrScanRow, err)
		}
		result[therapistID] = append(result[therapistID], payer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPayersForTherapists - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}
