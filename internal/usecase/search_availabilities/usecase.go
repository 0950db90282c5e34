package search_availabilities

import (
	"context"
	"sync"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// UseCase use case загрузки слотов по выбранной страховке.
//
// Держит локальное состояние результата и гарантирует, что при смене
// страховки зафиксировать результат может только самый свежий запрос:
// ответы вытесненных запросов отбрасываются по прибытии (отмена
// in-flight запросов не требуется).
type UseCase struct {
	client ScheduleAPIClient
	logger Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client ScheduleAPIClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Refresh загружает полный список слотов для страховки и возвращает
// зафиксированное состояние.
//
// Порядок работы:
//  1. Пустая страховка — по определению пустой список без сетевых вызовов.
//  2. Health-проба: при неудаче возвращаем ErrBackendUnavailable сразу,
//     не выполняя основной запрос (fail-fast вместо невнятной ошибки).
//  3. Основной запрос слотов.
//
// Неудачный запрос очищает предыдущий список — устаревшие данные после
// ошибки не показываются. Ошибка не фатальна: состояние остаётся рабочим,
// смена фильтров запустит новый запрос.
func (uc *UseCase) Refresh(ctx context.Context, insurance string) State {
	gen := uc.begin(insurance)

	if insurance == "" {
		return uc.commit(gen, State{Slots: []domain.Availability{}})
	}

	uc.logger.Info("Refresh: fetching availabilities for insurance=%s", insurance)

	if err := uc.client.Health(ctx); err != nil {
		uc.logger.Error("Refresh: health check failed for insurance=%s: %v", insurance, err)
		return uc.commit(gen, State{Insurance: insurance, Err: err})
	}

	slots, err := uc.client.SearchAvailabilities(ctx, insurance, nil)
	if err != nil {
		uc.logger.Error("Refresh: fetch failed for insurance=%s: %v", insurance, err)
		return uc.commit(gen, State{Insurance: insurance, Err: err})
	}

	uc.logger.Info("Refresh: fetched %d slots for insurance=%s", len(slots), insurance)
	return uc.commit(gen, State{Insurance: insurance, Slots: slots})
}

// Snapshot возвращает текущее состояние результата
func (uc *UseCase) Snapshot() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.state
}

// begin регистрирует новый запрос и помечает состояние как загружающееся
func (uc *UseCase) begin(insurance string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.gen++
	uc.state = State{
		Insurance: insurance,
		Loading:   true,
		Slots:     uc.state.Slots,
	}
	return uc.gen
}

// commit фиксирует результат, только если запрос не был вытеснен более новым.
// Для вытесненного запроса возвращается актуальное состояние без изменений.
func (uc *UseCase) commit(gen uint64, next State) State {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if gen != uc.gen {
		uc.logger.Warn("Refresh: discarding superseded result for insurance=%s", next.Insurance)
		return uc.state
	}

	uc.state = next
	return uc.state
}
