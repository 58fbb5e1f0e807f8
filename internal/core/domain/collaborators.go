package domain

import "time"

// Doctor is the read-only directory entry the ledger attributes earnings to.
type Doctor struct {
	DoctorID     string `json:"doctorId"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	IsActive     bool   `json:"isActive"`
}

// Token is the read-only OPD token/encounter snapshot used for posting and display enrichment.
type Token struct {
	TokenID      string    `json:"tokenId"`
	TokenNo      int       `json:"tokenNo"`
	PatientName  string    `json:"patientName"`
	MRN          string    `json:"mrn"`
	DoctorID     string    `json:"doctorId"`
	DepartmentID string    `json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}
