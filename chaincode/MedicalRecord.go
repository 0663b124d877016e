package chaincode

// MedicalRecord is one practitioner-authored entry in the vault. The
// record payload itself is stored off-ledger; DataSize keeps its byte
// length so consumers can fetch and verify it.
type MedicalRecord struct {
	RecordID           uint64   `json:"recordID"`
	PatientCode        string   `json:"patientCode"`
	Owner              string   `json:"owner"`
	DataSize           uint64   `json:"dataSize"`
	CreationBlock      int64    `json:"creationBlock"`
	MedicalNotes       string   `json:"medicalNotes"`
	ClassificationTags []string `json:"classificationTags"`
}
