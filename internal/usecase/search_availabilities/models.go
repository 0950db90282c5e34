package search_availabilities

import "github.com/m04kA/TMS-SearchService/internal/domain"

// State результат последнего завершившегося запроса слотов.
// Инвариант: Slots и Err относятся ровно к той страховке, что в Insurance —
// результаты вытесненных запросов сюда никогда не попадают.
type State struct {
	Insurance string                // страховка, для которой выполнялся запрос
	Loading   bool                  // запрос ещё выполняется
	Slots     []domain.Availability // полный нефильтрованный список слотов
	Err       error                 // ошибка последнего запроса (nil при успехе)
}

// ErrorText возвращает текст ошибки для отображения пользователю
func (s *State) ErrorText() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
