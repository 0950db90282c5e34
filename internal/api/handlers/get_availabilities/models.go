package get_availabilities

import (
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// InsurancePayerResponse HTTP-модель страховой компании
type InsurancePayerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TherapistResponse HTTP-модель терапевта
type TherapistResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	InsurancePayers []InsurancePayerResponse `json:"insurancePayers"`
}

// AvailabilityResponse HTTP-модель слота
type AvailabilityResponse struct {
	ID          string            `json:"id"`
	TherapistID string            `json:"therapistId"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Therapist   TherapistResponse `json:"therapist"`
}

// FromDomainList конвертирует доменные слоты в HTTP response
func FromDomainList(slots []*domain.Availability) []AvailabilityResponse {
	result := make([]AvailabilityResponse, len(slots))
	for i, slot := range slots {
		payers := make([]InsurancePayerResponse, len(slot.Therapist.InsurancePayers))
		for j, p := range slot.Therapist.InsurancePayers {
			payers[j] = InsurancePayerResponse{ID: p.ID, Name: p.Name}
		}

		result[i] = AvailabilityResponse{
			ID:          slot.ID,
			TherapistID: slot.TherapistID,
			StartTime:   slot.StartTime.Format(time.RFC3339),
			EndTime:     slot.EndTime.Format(time.RFC3339),
			Therapist: TherapistResponse{
				ID:              slot.Therapist.ID,
				Name:            slot.Therapist.Name,
				InsurancePayers: payers,
			},
		}
	}
	return result
}
