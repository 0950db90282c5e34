package filterstate

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// Ключи параметров фильтров во внешнем отображении (query string)
const (
	ParamInsurance  = "insurance"
	ParamDatePreset = "datePreset"
	ParamDate       = "date"
	ParamTimes      = "times"
	ParamSoonest    = "soonest"
)

// Store хранит канонические критерии фильтрации, экстернализованные в виде
// плоского key/value отображения (query string). Отображение — единственный
// механизм персистентности: состояние полностью восстанавливается из него.
//
// Каждый Update атомарно заменяет отображение и добавляет его в историю
// навигации, что позволяет восстанавливать предыдущие состояния фильтров
// через Back/Forward (адаптер к истории браузера, не часть логики фильтрации).
type Store struct {
	mu      sync.Mutex
	values  url.Values
	history []string
	cursor  int
}

// New создает пустое состояние фильтров
func New() *Store {
	return &Store{
		values:  url.Values{},
		history: []string{""},
		cursor:  0,
	}
}

// FromQuery восстанавливает состояние фильтров из query string
func FromQuery(raw string) (*Store, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	return &Store{
		values:  values,
		history: []string{values.Encode()},
		cursor:  0,
	}, nil
}

// Update синхронно вливает изменения в отображение.
// Пустое значение удаляет ключ — пустые строки никогда не сохраняются.
// Новое состояние попадает в историю, обрезая «вперёд»-ветку после Back.
func (s *Store) Update(changes map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range changes {
		if value == "" {
			s.values.Del(key)
			continue
		}
		s.values.Set(key, value)
	}

	s.push(s.values.Encode())
}

// Reset сбрасывает все фильтры
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = url.Values{}
	s.push("")
}

// Encode возвращает текущее отображение в виде query string
func (s *Store) Encode() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.values.Encode()
}

// Back восстанавливает предыдущее состояние фильтров.
// Возвращает false, если истории больше нет.
func (s *Store) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.restore(s.history[s.cursor])
	return true
}

// Forward восстанавливает состояние, отменённое последним Back
func (s *Store) Forward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.history)-1 {
		return false
	}
	s.cursor++
	s.restore(s.history[s.cursor])
	return true
}

// Criteria разбирает текущее отображение в критерии фильтрации.
// Некорректные значения не являются ошибкой: неизвестный пресет заменяется
// на today, нераспознанная дата считается отсутствующей.
func (s *Store) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	criteria := domain.FilterCriteria{
		Insurance:  s.values.Get(ParamInsurance),
		DatePreset: domain.ParseDatePreset(s.values.Get(ParamDatePreset)),
		Soonest:    s.values.Get(ParamSoonest) == "true",
	}

	// Строгий разбор yyyy-MM-dd в локальной таймзоне
	if raw := s.values.Get(ParamDate); raw != "" {
		if date, err := time.ParseInLocation(domain.DateFormat, raw, time.Local); err == nil {
			criteria.PickedDate = &date
		}
	}

	for _, id := range strings.Split(s.values.Get(ParamTimes), ",") {
		if id != "" {
			criteria.TimeSegments = append(criteria.TimeSegments, id)
		}
	}

	return criteria
}

// push добавляет состояние в историю (вызывается под мьютексом)
func (s *Store) push(encoded string) {
	s.history = append(s.history[:s.cursor+1], encoded)
	s.cursor = len(s.history) - 1
}

// restore заменяет текущее отображение состоянием из истории (под мьютексом)
func (s *Store) restore(encoded string) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		// История хранит только уже закодированные состояния
		values = url.Values{}
	}
	s.values = values
}
