package filter_availabilities

import "github.com/m04kA/TMS-SearchService/pkg/ptr"

// UseCase use case вычисления видимого набора слотов из полного списка
// и критериев фильтрации.
//
// Деривация — чистая функция (список слотов, критерии, текущее время):
// никакого скрытого состояния, влияющего на результат, нет. Пересчёт
// запускается явно при каждом изменении любого из входов.
type UseCase struct {
	timeProvider TimeProvider
}

// NewUseCase создает новый экземпляр use case
func NewUseCase() *UseCase {
	return &UseCase{
		timeProvider: &RealTimeProvider{},
	}
}

// Execute вычисляет видимый набор слотов, запасной вариант и разметку календаря
func (uc *UseCase) Execute(req *Request) *Response {
	now := uc.timeProvider.Now()
	criteria := req.Criteria

	// 1. Страховочный фильтр — общий для всех трёх дериваций
	insured := filterByInsurance(req.Slots, criteria.Insurance)

	// 2. Прямые совпадения: дата, затем время суток
	items := filterByDateRange(insured, criteria, now)
	items = filterByTimeSegments(items, criteria.TimeSegments)

	// 3. «Ближайший» схлопывает результат до самого раннего подходящего дня
	if criteria.Soonest && len(items) > 0 {
		items = restrictToEarliestDay(items)
	}

	// 4. Итоговый порядок всегда по возрастанию времени начала
	sortByStartTime(items)

	resp := &Response{
		Items:         items,
		CalendarDates: calendarDates(insured, now),
	}

	// 5. Запасной вариант: при пустом результате ищем ближайший день,
	//    игнорируя фильтр по дате, но сохраняя страховку и время суток
	if len(items) == 0 {
		fallback := restrictToEarliestDay(filterByTimeSegments(insured, criteria.TimeSegments))
		if len(fallback) > 0 {
			resp.Fallback = fallback
			resp.FallbackDate = ptr.Ptr(fallback[0].StartDate())
		}
	}

	return resp
}
