package chaincode

import (
	"fmt"
)

// Field bounds for the vault data model. Lengths are byte lengths.
const (
	maxPatientCodeLen = 64
	maxNotesLen       = 128
	maxTagLen         = 32
	maxTagCount       = 10
	maxDataSize       = 1_000_000_000 // exclusive
)

func validPatientCode(patientCode string) bool {
	return len(patientCode) >= 1 && len(patientCode) <= maxPatientCodeLen
}

func validDataSize(dataSize uint64) bool {
	return dataSize >= 1 && dataSize < maxDataSize
}

func validNotes(notes string) bool {
	return len(notes) >= 1 && len(notes) <= maxNotesLen
}

func validTag(tag string) bool {
	return len(tag) >= 1 && len(tag) <= maxTagLen
}

func validTagCollection(tags []string) bool {
	if len(tags) < 1 || len(tags) > maxTagCount {
		return false
	}
	for _, tag := range tags {
		if !validTag(tag) {
			return false
		}
	}
	return true
}

// validateRecordFields checks every inbound field in a fixed order and
// stops at the first violation, before anything touches the ledger.
func validateRecordFields(patientCode string, dataSize uint64, notes string, tags []string) error {
	if !validPatientCode(patientCode) {
		return fmt.Errorf("patient code must be between 1 and %d characters: %w", maxPatientCodeLen, ErrInvalidField)
	}

	if !validDataSize(dataSize) {
		return fmt.Errorf("data size must be between 1 and %d bytes: %w", maxDataSize-1, ErrInvalidField)
	}

	if !validNotes(notes) {
		return fmt.Errorf("medical notes must be between 1 and %d characters: %w", maxNotesLen, ErrInvalidField)
	}

	if !validTagCollection(tags) {
		return fmt.Errorf("classification tags must be 1 to %d entries of 1 to %d characters each: %w", maxTagCount, maxTagLen, ErrInvalidTagCollection)
	}

	return nil
}
