package filter_availabilities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// Фиксированное «сегодня» для тестов: среда 11 марта 2026, 10:30.
// Текущая неделя (вс-сб): 8-14 марта, следующая: 15-21 марта.
var testNow = time.Date(2026, time.March, 11, 10, 30, 0, 0, time.Local)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

func newTestUseCase() *UseCase {
	uc := NewUseCase()
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func slotAt(id, therapistName string, start time.Time, payerIDs ...string) domain.Availability {
	payers := make([]domain.InsurancePayer, len(payerIDs))
	for i, pid := range payerIDs {
		payers[i] = domain.InsurancePayer{ID: pid, Name: pid}
	}

	return domain.Availability{
		ID:          id,
		TherapistID: "therapist-" + therapistName,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Therapist: domain.Therapist{
			ID:              "therapist-" + therapistName,
			Name:            therapistName,
			InsurancePayers: payers,
		},
	}
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func TestExecute_InsuranceSafetyFilter(t *testing.T) {
	uc := newTestUseCase()

	slots := []domain.Availability{
		slotAt("1", "Dr. A", at(testNow, 9, 0), "aetna", "cigna"),
		slotAt("2", "Dr. B", at(testNow, 10, 0), "medicaid"),
		slotAt("3", "Dr. C", at(testNow, 11, 0), "aetna"),
	}

	resp := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetToday},
	})

	// Результат — подмножество, у каждого элемента страховка в наборе терапевта
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.True(t, item.Therapist.AcceptsPayer("aetna"))
	}
}

func TestExecute_TodayAndTomorrowPartitionByCalendarDay(t *testing.T) {
	uc := newTestUseCase()

	lateToday := slotAt("late", "Dr. A", at(testNow, 23, 59), "aetna")
	earlyTomorrow := slotAt("early", "Dr. B", at(testNow.AddDate(0, 0, 1), 0, 1), "aetna")
	slots := []domain.Availability{lateToday, earlyTomorrow}

	today := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetToday},
	})
	tomorrow := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetTomorrow},
	})

	require.Len(t, today.Items, 1)
	assert.Equal(t, "late", today.Items[0].ID)

	require.Len(t, tomorrow.Items, 1)
	assert.Equal(t, "early", tomorrow.Items[0].ID)
}

func TestExecute_WeekWindowsAreSundayToSaturdayAndDisjoint(t *testing.T) {
	uc := newTestUseCase()

	// По одному слоту на каждый день с 7 по 22 марта
	var slots []domain.Availability
	day := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.Local)
	for !day.After(time.Date(2026, time.March, 22, 0, 0, 0, 0, time.Local)) {
		slots = append(slots, slotAt(day.Format("2006-01-02"), "Dr. A", at(day, 10, 0), "aetna"))
		day = day.AddDate(0, 0, 1)
	}

	thisWeek := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetThisWeek},
	})
	nextWeek := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetNextWeek},
	})

	require.Len(t, thisWeek.Items, 7)
	assert.Equal(t, "2026-03-08", thisWeek.Items[0].ID)
	assert.Equal(t, "2026-03-14", thisWeek.Items[6].ID)

	require.Len(t, nextWeek.Items, 7)
	assert.Equal(t, "2026-03-15", nextWeek.Items[0].ID)
	assert.Equal(t, "2026-03-21", nextWeek.Items[6].ID)

	// Окна не пересекаются
	seen := make(map[string]struct{})
	for _, item := range thisWeek.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range nextWeek.Items {
		_, overlap := seen[item.ID]
		assert.False(t, overlap)
	}
}

func TestExecute_PickPreset(t *testing.T) {
	uc := newTestUseCase()

	pickedDay := time.Date(2026, time.March, 13, 0, 0, 0, 0, time.Local)
	slots := []domain.Availability{
		slotAt("on-picked", "Dr. A", at(pickedDay, 9, 0), "aetna"),
		slotAt("other-day", "Dr. B", at(testNow, 9, 0), "aetna"),
	}

	t.Run("picked date matches exactly that day", func(t *testing.T) {
		resp := uc.Execute(&Request{
			Slots: slots,
			Criteria: domain.FilterCriteria{
				Insurance:  "aetna",
				DatePreset: domain.PresetPick,
				PickedDate: &pickedDay,
			},
		})

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "on-picked", resp.Items[0].ID)
	})

	t.Run("pick without a date matches nothing", func(t *testing.T) {
		resp := uc.Execute(&Request{
			Slots: slots,
			Criteria: domain.FilterCriteria{
				Insurance:  "aetna",
				DatePreset: domain.PresetPick,
			},
		})

		assert.Empty(t, resp.Items)
	})
}

func TestExecute_TimeSegmentBoundaries(t *testing.T) {
	uc := newTestUseCase()

	slots := []domain.Availability{
		slotAt("at-6", "Dr. A", at(testNow, 6, 0), "aetna"),
		slotAt("at-11-59", "Dr. B", at(testNow, 11, 59), "aetna"),
		slotAt("at-12", "Dr. C", at(testNow, 12, 0), "aetna"),
		slotAt("at-16", "Dr. D", at(testNow, 16, 0), "aetna"),
		slotAt("at-19-30", "Dr. E", at(testNow, 19, 30), "aetna"),
		slotAt("at-20", "Dr. F", at(testNow, 20, 0), "aetna"),
	}

	tests := []struct {
		name     string
		segments []string
		wantIDs  []string
	}{
		{
			name:     "no segments passes everything",
			segments: nil,
			wantIDs:  []string{"at-6", "at-11-59", "at-12", "at-16", "at-19-30", "at-20"},
		},
		{
			name:     "morning is [6,12)",
			segments: []string{"morning"},
			wantIDs:  []string{"at-6", "at-11-59"},
		},
		{
			name:     "afternoon is [12,16)",
			segments: []string{"afternoon"},
			wantIDs:  []string{"at-12"},
		},
		{
			name:     "evening is [16,20)",
			segments: []string{"evening"},
			wantIDs:  []string{"at-16", "at-19-30"},
		},
		{
			name:     "multiple segments use any-match",
			segments: []string{"morning", "evening"},
			wantIDs:  []string{"at-6", "at-11-59", "at-16", "at-19-30"},
		},
		{
			name:     "unknown segment id matches nothing",
			segments: []string{"night"},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := uc.Execute(&Request{
				Slots: slots,
				Criteria: domain.FilterCriteria{
					Insurance:    "aetna",
					DatePreset:   domain.PresetToday,
					TimeSegments: tt.segments,
				},
			})

			gotIDs := make([]string, 0, len(resp.Items))
			for _, item := range resp.Items {
				gotIDs = append(gotIDs, item.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestExecute_SoonestCollapsesToEarliestDay(t *testing.T) {
	uc := newTestUseCase()

	day1 := testNow.AddDate(0, 0, 1) // четверг текущей недели
	day2 := testNow.AddDate(0, 0, 2)
	slots := []domain.Availability{
		slotAt("d2-morning", "Dr. A", at(day2, 9, 0), "aetna"),
		slotAt("d1-evening", "Dr. B", at(day1, 17, 0), "aetna"),
		slotAt("d1-morning", "Dr. C", at(day1, 9, 0), "aetna"),
	}

	resp := uc.Execute(&Request{
		Slots: slots,
		Criteria: domain.FilterCriteria{
			Insurance:  "aetna",
			DatePreset: domain.PresetThisWeek,
			Soonest:    true,
		},
	})

	// Все элементы на одном (самом раннем) дне, по возрастанию времени
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "d1-morning", resp.Items[0].ID)
	assert.Equal(t, "d1-evening", resp.Items[1].ID)
	for _, item := range resp.Items {
		assert.Equal(t, day1.Format(domain.DateFormat), item.StartDate().Format(domain.DateFormat))
	}
}

func TestExecute_FallbackNextAvailableDay(t *testing.T) {
	uc := newTestUseCase()

	// Ни одного слота сегодня и на этой неделе, один слот через три недели
	farDay := testNow.AddDate(0, 0, 21)
	farSlot := slotAt("far", "Dr. A", at(farDay, 14, 0), "aetna")

	resp := uc.Execute(&Request{
		Slots:    []domain.Availability{farSlot},
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetToday},
	})

	assert.Empty(t, resp.Items)
	assert.True(t, resp.IsFallback())
	require.Len(t, resp.Fallback, 1)
	assert.Equal(t, "far", resp.Fallback[0].ID)
	require.NotNil(t, resp.FallbackDate)
	assert.Equal(t, farDay.Format(domain.DateFormat), resp.FallbackDate.Format(domain.DateFormat))
}

func TestExecute_FallbackRespectsTimeSegments(t *testing.T) {
	uc := newTestUseCase()

	day1 := testNow.AddDate(0, 0, 5)
	day2 := testNow.AddDate(0, 0, 8)
	slots := []domain.Availability{
		slotAt("d1-evening", "Dr. A", at(day1, 18, 0), "aetna"),
		slotAt("d2-morning", "Dr. B", at(day2, 9, 0), "aetna"),
		slotAt("d2-evening", "Dr. C", at(day2, 17, 0), "aetna"),
	}

	resp := uc.Execute(&Request{
		Slots: slots,
		Criteria: domain.FilterCriteria{
			Insurance:    "aetna",
			DatePreset:   domain.PresetToday,
			TimeSegments: []string{"morning"},
		},
	})

	// Ближайший день с утренним слотом — day2, вечерние туда не попадают
	assert.Empty(t, resp.Items)
	require.Len(t, resp.Fallback, 1)
	assert.Equal(t, "d2-morning", resp.Fallback[0].ID)
}

func TestExecute_NoFallbackWhenNothingMatchesTimeFilter(t *testing.T) {
	uc := newTestUseCase()

	slots := []domain.Availability{
		slotAt("evening-only", "Dr. A", at(testNow.AddDate(0, 0, 3), 18, 0), "aetna"),
	}

	resp := uc.Execute(&Request{
		Slots: slots,
		Criteria: domain.FilterCriteria{
			Insurance:    "aetna",
			DatePreset:   domain.PresetToday,
			TimeSegments: []string{"morning"},
		},
	})

	assert.Empty(t, resp.Items)
	assert.Empty(t, resp.Fallback)
	assert.False(t, resp.IsFallback())
	assert.Nil(t, resp.FallbackDate)
}

func TestExecute_SortIsDeterministicOnTies(t *testing.T) {
	uc := newTestUseCase()

	slots := []domain.Availability{
		slotAt("b-10", "Dr. B", at(testNow, 10, 0), "aetna"),
		slotAt("a-9-second", "Dr. A", at(testNow, 9, 0), "aetna"),
		slotAt("a-9-first", "Dr. A", at(testNow, 9, 0), "aetna"),
	}

	req := &Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetToday},
	}

	first := uc.Execute(req)
	require.Len(t, first.Items, 3)

	wantIDs := []string{"a-9-first", "a-9-second", "b-10"}
	for i, item := range first.Items {
		assert.Equal(t, wantIDs[i], item.ID)
	}

	// Повторные вызовы с теми же входами дают тот же порядок
	for i := 0; i < 5; i++ {
		again := uc.Execute(req)
		require.Len(t, again.Items, 3)
		for j, item := range again.Items {
			assert.Equal(t, first.Items[j].ID, item.ID)
		}
	}
}

func TestExecute_EndToEndAetnaToday(t *testing.T) {
	uc := newTestUseCase()

	slots := []domain.Availability{
		slotAt("b-today", "Dr. B", at(testNow, 14, 0), "aetna"),
		slotAt("a-today", "Dr. A", at(testNow, 9, 0), "aetna"),
		slotAt("c-tomorrow", "Dr. C", at(testNow.AddDate(0, 0, 1), 10, 0), "aetna"),
	}

	resp := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{Insurance: "aetna", DatePreset: domain.PresetToday},
	})

	// Ровно два сегодняшних слота, 09:00 раньше 14:00, завтрашний не виден
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "a-today", resp.Items[0].ID)
	assert.Equal(t, "b-today", resp.Items[1].ID)

	// Добавление сегмента morning сужает до слота 09:00
	withMorning := uc.Execute(&Request{
		Slots: slots,
		Criteria: domain.FilterCriteria{
			Insurance:    "aetna",
			DatePreset:   domain.PresetToday,
			TimeSegments: []string{"morning"},
		},
	})

	require.Len(t, withMorning.Items, 1)
	assert.Equal(t, "a-today", withMorning.Items[0].ID)
}

func TestExecute_DoesNotMutateInputSlots(t *testing.T) {
	uc := newTestUseCase()

	// Пустая страховка и отсутствие сегментов: фильтры пропускают входной
	// срез без копирования, а fallback-ветка его сортирует
	later := slotAt("later", "Dr. A", at(testNow.AddDate(0, 0, 5), 14, 0), "aetna")
	earlier := slotAt("earlier", "Dr. B", at(testNow.AddDate(0, 0, 3), 9, 0), "aetna")
	slots := []domain.Availability{later, earlier}

	resp := uc.Execute(&Request{
		Slots:    slots,
		Criteria: domain.FilterCriteria{DatePreset: domain.PresetToday},
	})

	// Fallback вычислен (сегодня слотов нет), но вход остался как был
	require.Len(t, resp.Fallback, 1)
	assert.Equal(t, "earlier", resp.Fallback[0].ID)
	assert.Equal(t, "later", slots[0].ID)
	assert.Equal(t, "earlier", slots[1].ID)
}

func TestExecute_CalendarDates(t *testing.T) {
	uc := newTestUseCase()

	inWindow := testNow.AddDate(0, 0, 2)
	weekAhead := testNow.AddDate(0, 0, 8)
	outOfWindow := testNow.AddDate(0, 0, 21)
	slots := []domain.Availability{
		slotAt("1", "Dr. A", at(inWindow, 18, 0), "aetna"), // вечер: фильтр времени не влияет
		slotAt("2", "Dr. B", at(weekAhead, 9, 0), "aetna"),
		slotAt("3", "Dr. C", at(outOfWindow, 9, 0), "aetna"),
		slotAt("4", "Dr. D", at(inWindow, 10, 0), "medicaid"), // чужая страховка
	}

	resp := uc.Execute(&Request{
		Slots: slots,
		Criteria: domain.FilterCriteria{
			Insurance:    "aetna",
			DatePreset:   domain.PresetToday,
			TimeSegments: []string{"morning"},
		},
	})

	assert.Equal(t, []string{
		inWindow.Format(domain.DateFormat),
		weekAhead.Format(domain.DateFormat),
	}, resp.CalendarDates)
}
