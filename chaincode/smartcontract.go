package chaincode

// record vault contract.
import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

type RecordContract struct {
	contractapi.Contract
}

// Ledger key holding the number of records ever created. The next
// record ID is always this value plus one; IDs are never reused.
const totalRecordsKey = "totalRecords"

// CreateRecord stores a new medical record owned by the calling
// practitioner and writes the creator's access grant next to it.
// Returns the vault-assigned record ID.
func (c *RecordContract) CreateRecord(ctx contractapi.TransactionContextInterface,
	patientCode string, dataSize uint64, notes string, tags []string) (uint64, error) {

	// Validar primeiro, só depois vamos à ledger.
	if err := validateRecordFields(patientCode, dataSize, notes, tags); err != nil {
		return 0, err
	}

	owner, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return 0, fmt.Errorf("failed to get caller identity: %v", err)
	}

	totalRecords, err := readTotalRecords(ctx)
	if err != nil {
		return 0, err
	}
	newRecordID := totalRecords + 1

	txTimestamp, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction timestamp: %v", err)
	}

	record := MedicalRecord{
		RecordID:           newRecordID,
		PatientCode:        patientCode,
		Owner:              owner,
		DataSize:           dataSize,
		CreationBlock:      txTimestamp.GetSeconds(),
		MedicalNotes:       notes,
		ClassificationTags: tags,
	}

	if err := putRecord(ctx, record); err != nil {
		return 0, err
	}

	grant := AccessGrant{
		RecordID:  newRecordID,
		Accessor:  owner,
		HasAccess: true,
	}

	grantJSON, err := json.Marshal(grant)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal access grant: %v", err)
	}

	grantKey, err := createAccessGrantCompositeKey(ctx, newRecordID, owner)
	if err != nil {
		return 0, err
	}

	if err := ctx.GetStub().PutState(grantKey, grantJSON); err != nil {
		return 0, fmt.Errorf("failed to store access grant on the ledger: %v", err)
	}

	if err := ctx.GetStub().PutState(totalRecordsKey, []byte(formatRecordID(newRecordID))); err != nil {
		return 0, fmt.Errorf("failed to update the record counter: %v", err)
	}

	return newRecordID, nil
}

// TransferOwnership hands the record over to another practitioner.
// Only the current owner may transfer; the rest of the record,
// including its creation block, keeps its values. Access grants are
// not rewritten by a transfer.
func (c *RecordContract) TransferOwnership(ctx contractapi.TransactionContextInterface,
	recordID uint64, newOwner string) error {

	record, err := readRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if err := requireOwner(ctx, record); err != nil {
		return err
	}

	record.Owner = newOwner

	return putRecord(ctx, *record)
}

// UpdateRecordMetadata replaces the four mutable record fields after
// re-running the full field validation. Owner and creation block are
// untouched.
func (c *RecordContract) UpdateRecordMetadata(ctx contractapi.TransactionContextInterface,
	recordID uint64, patientCode string, dataSize uint64, notes string, tags []string) error {

	record, err := readRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if err := requireOwner(ctx, record); err != nil {
		return err
	}

	if err := validateRecordFields(patientCode, dataSize, notes, tags); err != nil {
		return err
	}

	record.PatientCode = patientCode
	record.DataSize = dataSize
	record.MedicalNotes = notes
	record.ClassificationTags = tags

	return putRecord(ctx, *record)
}

// ReadMedicalRecord returns the whole record for a key. Reads carry no
// authorization check; the grant table only gates what callers decide
// to do with HasAccess.
func (c *RecordContract) ReadMedicalRecord(ctx contractapi.TransactionContextInterface, recordID uint64) (*MedicalRecord, error) {
	return readRecord(ctx, recordID)
}

func (c *RecordContract) GetClassificationTags(ctx contractapi.TransactionContextInterface, recordID uint64) ([]string, error) {
	record, err := readRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return record.ClassificationTags, nil
}

func (c *RecordContract) GetRecordOwner(ctx contractapi.TransactionContextInterface, recordID uint64) (string, error) {
	record, err := readRecord(ctx, recordID)
	if err != nil {
		return "", err
	}
	return record.Owner, nil
}

func (c *RecordContract) GetCreationBlock(ctx contractapi.TransactionContextInterface, recordID uint64) (int64, error) {
	record, err := readRecord(ctx, recordID)
	if err != nil {
		return 0, err
	}
	return record.CreationBlock, nil
}

func (c *RecordContract) GetDataSize(ctx contractapi.TransactionContextInterface, recordID uint64) (uint64, error) {
	record, err := readRecord(ctx, recordID)
	if err != nil {
		return 0, err
	}
	return record.DataSize, nil
}

func (c *RecordContract) GetMedicalNotes(ctx contractapi.TransactionContextInterface, recordID uint64) (string, error) {
	record, err := readRecord(ctx, recordID)
	if err != nil {
		return "", err
	}
	return record.MedicalNotes, nil
}

// RecordExists reports whether a record ID was ever issued.
func (c *RecordContract) RecordExists(ctx contractapi.TransactionContextInterface, recordID uint64) (bool, error) {
	recordKey, err := createRecordCompositeKey(ctx, recordID)
	if err != nil {
		return false, err
	}

	recordJSON, err := ctx.GetStub().GetState(recordKey)
	if err != nil {
		return false, fmt.Errorf("failed to read record from the ledger: %v", err)
	}

	return recordJSON != nil, nil
}

// HasAccess returns the stored grant flag for the exact record and
// accessor pair. A missing grant row is a failure, not a false: the
// table only answers for pairs it was told about.
func (c *RecordContract) HasAccess(ctx contractapi.TransactionContextInterface, recordID uint64, accessor string) (bool, error) {
	grantKey, err := createAccessGrantCompositeKey(ctx, recordID, accessor)
	if err != nil {
		return false, err
	}

	grantJSON, err := ctx.GetStub().GetState(grantKey)
	if err != nil {
		return false, fmt.Errorf("failed to read access grant from the ledger: %v", err)
	}

	if grantJSON == nil {
		return false, fmt.Errorf("record %d has no grant for accessor %s: %w", recordID, accessor, ErrForbiddenOperation)
	}

	var grant AccessGrant
	if err := json.Unmarshal(grantJSON, &grant); err != nil {
		return false, fmt.Errorf("failed to unmarshal access grant: %v", err)
	}

	return grant.HasAccess, nil
}

// GetTotalRecords returns how many records were ever created, which is
// also the last issued record ID.
func (c *RecordContract) GetTotalRecords(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return readTotalRecords(ctx)
}

func requireOwner(ctx contractapi.TransactionContextInterface, record *MedicalRecord) error {
	caller, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return fmt.Errorf("failed to get caller identity: %v", err)
	}

	if caller != record.Owner {
		return fmt.Errorf("record %d belongs to another practitioner: %w", record.RecordID, ErrAuthFailed)
	}

	return nil
}

func readRecord(ctx contractapi.TransactionContextInterface, recordID uint64) (*MedicalRecord, error) {
	recordKey, err := createRecordCompositeKey(ctx, recordID)
	if err != nil {
		return nil, err
	}

	recordJSON, err := ctx.GetStub().GetState(recordKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read record from the ledger: %v", err)
	}

	if recordJSON == nil {
		return nil, fmt.Errorf("record %d: %w", recordID, ErrRecordNotFound)
	}

	var record MedicalRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %v", err)
	}

	return &record, nil
}

func putRecord(ctx contractapi.TransactionContextInterface, record MedicalRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %v", err)
	}

	recordKey, err := createRecordCompositeKey(ctx, record.RecordID)
	if err != nil {
		return err
	}

	if err := ctx.GetStub().PutState(recordKey, recordJSON); err != nil {
		return fmt.Errorf("failed to store record on the ledger: %v", err)
	}

	return nil
}

func readTotalRecords(ctx contractapi.TransactionContextInterface) (uint64, error) {
	totalBytes, err := ctx.GetStub().GetState(totalRecordsKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read the record counter: %v", err)
	}

	if totalBytes == nil {
		return 0, nil
	}

	totalRecords, err := strconv.ParseUint(string(totalBytes), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse the record counter: %v", err)
	}

	return totalRecords, nil
}
