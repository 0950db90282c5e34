package domain

import "time"

// Therapist represents a therapist together with the ordered set of
// insurance payers they accept. Read-only on the client side.
type Therapist struct {
	ID              string
	Name            string
	InsurancePayers []InsurancePayer
}

// AcceptsPayer reports whether the therapist accepts the given insurance payer
func (t *Therapist) AcceptsPayer(payerID string) bool {
	for _, p := range t.InsurancePayers {
		if p.ID == payerID {
			return true
		}
	}
	return false
}

// Availability represents one bookable appointment window.
// Slots are immutable snapshots fetched per search; StartTime < EndTime is
// an upstream invariant and is not re-validated here.
type Availability struct {
	ID          string
	TherapistID string
	StartTime   time.Time
	EndTime     time.Time
	Therapist   Therapist
}

// StartDate returns the slot's start truncated to the local calendar day
func (a *Availability) StartDate() time.Time {
	y, m, d := a.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.StartTime.Location())
}

// StartHour returns the slot's start hour in local time
func (a *Availability) StartHour() int {
	return a.StartTime.Hour()
}
