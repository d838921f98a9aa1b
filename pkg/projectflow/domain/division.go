package domain

// Divisions owning steps in the canonical approval pipeline.
const (
	DivisionAdminProyek   = "Admin Proyek"
	DivisionOwner         = "Owner"
	DivisionAdminKeuangan = "Admin Keuangan"
	DivisionSurveyor      = "Surveyor"
	DivisionArsitek       = "Arsitek"
)
