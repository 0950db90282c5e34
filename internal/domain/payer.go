package domain

// InsurancePayer represents an insurance provider a therapist accepts
type InsurancePayer struct {
	ID   string
	Name string
}

// PayerCatalog is the static reference catalog shown in the search form.
// The backend exposes GET /api/insurance-payers, but the search flow keeps
// using this hardcoded list, mirroring the shipped UI.
// TODO: switch the search flow to the insurance-payers endpoint once the
// catalog stops being duplicated here.
var PayerCatalog = []InsurancePayer{
	{ID: "bluecross", Name: "Blue Cross Blue Shield"},
	{ID: "aetna", Name: "Aetna"},
	{ID: "cigna", Name: "Cigna"},
	{ID: "medicaid", Name: "Medicaid"},
	{ID: "united", Name: "United Healthcare"},
	{ID: "kaiser", Name: "Kaiser Permanente"},
}

// KnownPayer reports whether the id belongs to the static catalog
func KnownPayer(id string) bool {
	for _, p := range PayerCatalog {
		if p.ID == id {
			return true
		}
	}
	return false
}
