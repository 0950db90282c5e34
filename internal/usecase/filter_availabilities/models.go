package filter_availabilities

import (
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// Request модель запроса на вычисление видимого набора слотов
type Request struct {
	Slots    []domain.Availability // полный нефильтрованный список от бэкенда
	Criteria domain.FilterCriteria
}

// Response результат деривации: видимый набор, запасной вариант
// («ближайший доступный день») и разметка календаря.
type Response struct {
	// Items прямые совпадения по всем фильтрам, по возрастанию времени начала
	Items []domain.Availability

	// Fallback слоты ближайшего доступного дня (страховка + время суток,
	// без фильтра по дате). Заполняется только когда Items пуст.
	// Это подсказка «нет совпадений, но вот ближайший день», а не подмена
	// выбранной пользователем даты — UI обязан отличать её от Items.
	Fallback []domain.Availability

	// FallbackDate дата, на которую приходятся слоты Fallback
	FallbackDate *time.Time

	// CalendarDates даты (yyyy-MM-dd) с хотя бы одним слотом в 14-дневном
	// окне календаря; учитывает только фильтр по страховке. Остальные даты
	// в пикере отключаются.
	CalendarDates []string
}

// IsFallback сообщает, показывается ли запасной вариант вместо прямых совпадений
func (r *Response) IsFallback() bool {
	return len(r.Items) == 0 && len(r.Fallback) > 0
}
