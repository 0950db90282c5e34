package filter_availabilities

import "time"

// TimeProvider интерфейс для получения текущего времени (для тестирования).
// «Сегодня», границы недель и календарное окно считаются от него.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
