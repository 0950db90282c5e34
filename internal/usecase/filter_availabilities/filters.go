package filter_availabilities

import (
	"sort"
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// filterByInsurance оставляет только слоты терапевтов, принимающих выбранную
// страховку. Бэкенд уже фильтрует по страховке на своей стороне, но клиент
// перепроверяет — защита от расхождения поведения бэкенда.
func filterByInsurance(items []domain.Availability, insurance string) []domain.Availability {
	if insurance == "" {
		return items
	}

	result := make([]domain.Availability, 0, len(items))
	for _, item := range items {
		if item.Therapist.AcceptsPayer(insurance) {
			result = append(result, item)
		}
	}
	return result
}

// filterByDateRange оставляет слоты, попадающие в выбранный диапазон дат.
// Все сравнения идут по локальному календарному дню, не по UTC.
func filterByDateRange(items []domain.Availability, criteria domain.FilterCriteria, now time.Time) []domain.Availability {
	today := startOfDay(now)

	var match func(slot domain.Availability) bool

	switch criteria.DatePreset {
	case domain.PresetTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		match = func(slot domain.Availability) bool {
			return isSameDay(slot.StartTime, tomorrow)
		}

	case domain.PresetThisWeek:
		start, end := startOfWeek(today), endOfWeek(today)
		match = func(slot domain.Availability) bool {
			return dayWithin(slot.StartDate(), start, end)
		}

	case domain.PresetNextWeek:
		base := today.AddDate(0, 0, 7)
		start, end := startOfWeek(base), endOfWeek(base)
		match = func(slot domain.Availability) bool {
			return dayWithin(slot.StartDate(), start, end)
		}

	case domain.PresetPick:
		// Пресет pick без выбранной даты не совпадает ни с чем
		if criteria.PickedDate == nil {
			return []domain.Availability{}
		}
		picked := *criteria.PickedDate
		match = func(slot domain.Availability) bool {
			return isSameDay(slot.StartTime, picked)
		}

	default: // today
		match = func(slot domain.Availability) bool {
			return isSameDay(slot.StartTime, today)
		}
	}

	result := make([]domain.Availability, 0, len(items))
	for _, item := range items {
		if match(item) {
			result = append(result, item)
		}
	}
	return result
}

// filterByTimeSegments оставляет слоты, час начала которых попадает в
// [StartHour, EndHour) хотя бы одного выбранного сегмента.
// Без выбранных сегментов проходят все слоты; неизвестный id сегмента
// не совпадает ни с одним слотом.
func filterByTimeSegments(items []domain.Availability, segmentIDs []string) []domain.Availability {
	if len(segmentIDs) == 0 {
		return items
	}

	result := make([]domain.Availability, 0, len(items))
	for _, item := range items {
		hour := item.StartHour()
		for _, id := range segmentIDs {
			seg, ok := domain.SegmentByID(id)
			if ok && hour >= seg.StartHour && hour < seg.EndHour {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// restrictToEarliestDay сортирует слоты по возрастанию и оставляет только
// слоты самого раннего календарного дня. Сортируется копия: фильтры при
// пустых критериях возвращают входной срез как есть, и сортировка на месте
// меняла бы порядок слотов у вызывающего.
func restrictToEarliestDay(items []domain.Availability) []domain.Availability {
	if len(items) == 0 {
		return items
	}

	sorted := make([]domain.Availability, len(items))
	copy(sorted, items)
	sortByStartTime(sorted)
	first := sorted[0].StartDate()

	result := make([]domain.Availability, 0, len(sorted))
	for _, item := range sorted {
		if isSameDay(item.StartTime, first) {
			result = append(result, item)
		}
	}
	return result
}

// sortByStartTime сортирует слоты по возрастанию времени начала.
// Равные времена упорядочиваются по имени терапевта, затем по id слота,
// чтобы результат был детерминирован при любом порядке от бэкенда.
func sortByStartTime(items []domain.Availability) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].StartTime.Equal(items[j].StartTime) {
			return items[i].StartTime.Before(items[j].StartTime)
		}
		if items[i].Therapist.Name != items[j].Therapist.Name {
			return items[i].Therapist.Name < items[j].Therapist.Name
		}
		return items[i].ID < items[j].ID
	})
}
