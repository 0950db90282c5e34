package scheduleapi

import (
	"fmt"
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// InsurancePayer модель страховой компании в ответе бэкенда
type InsurancePayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Therapist модель терапевта в ответе бэкенда
type Therapist struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	InsurancePayers []InsurancePayer `json:"insurancePayers"`
}

// Availability модель слота в ответе бэкенда.
// Времена приходят строками (isoformat, с таймзоной или без).
type Availability struct {
	ID          string    `json:"id"`
	TherapistID string    `json:"therapistId"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Therapist   Therapist `json:"therapist"`
}

// HealthResponse модель ответа health-пробы
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse модель ошибки бэкенда (формат FastAPI: {"detail": "..."})
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SearchOptions необязательные параметры поиска. Бэкенд может их
// игнорировать — клиент никогда не полагается на серверную фильтрацию.
type SearchOptions struct {
	Date       string // yyyy-MM-dd
	DatePreset string
	Times      string // id сегментов через запятую
	Soonest    bool
}

// Форматы временных меток, которые отдают известные версии бэкенда
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseTimestamp разбирает временную метку слота.
// Метки без таймзоны интерпретируются как локальное время.
func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", raw)
}

// ToDomain конвертирует модель слота в доменную
func (a *Availability) ToDomain() (domain.Availability, error) {
	start, err := parseTimestamp(a.StartTime)
	if err != nil {
		return domain.Availability{}, err
	}

	end, err := parseTimestamp(a.EndTime)
	if err != nil {
		return domain.Availability{}, err
	}

	payers := make([]domain.InsurancePayer, len(a.Therapist.InsurancePayers))
	for i, p := range a.Therapist.InsurancePayers {
		payers[i] = domain.InsurancePayer{ID: p.ID, Name: p.Name}
	}

	return domain.Availability{
		ID:          a.ID,
		TherapistID: a.TherapistID,
		StartTime:   start,
		EndTime:     end,
		Therapist: domain.Therapist{
			ID:              a.Therapist.ID,
			Name:            a.Therapist.Name,
			InsurancePayers: payers,
		},
	}, nil
}
