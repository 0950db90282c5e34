package filter_availabilities

import (
	"sort"
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// calendarDates возвращает отсортированный набор дат (yyyy-MM-dd), на которые
// есть хотя бы один слот, ограниченный окном календаря: 14 дней, покрывающих
// текущую и следующую неделю. Фильтры по дате и времени суток не учитываются —
// набор используется только для разметки пикера.
func calendarDates(items []domain.Availability, now time.Time) []string {
	windowStart := startOfWeek(now)
	windowEnd := endOfWeek(windowStart.AddDate(0, 0, 7))

	seen := make(map[string]struct{})
	for _, item := range items {
		day := item.StartDate()
		if !dayWithin(day, windowStart, windowEnd) {
			continue
		}
		seen[day.Format(domain.DateFormat)] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return dates
}
