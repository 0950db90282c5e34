package filter_availabilities

import "time"

// startOfDay обнуляет время, оставляя только локальную календарную дату
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две временные метки относятся к одному
// локальному календарному дню
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// startOfWeek возвращает начало недели (воскресенье) для указанной даты
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// endOfWeek возвращает последний день недели (суббота) для указанной даты
func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}

// dayWithin проверяет, что день попадает в диапазон [start, end] включительно.
// Все три значения должны быть обнулены до начала дня.
func dayWithin(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
