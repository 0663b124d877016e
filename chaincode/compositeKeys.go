package chaincode

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func createRecordCompositeKey(ctx contractapi.TransactionContextInterface, recordID uint64) (string, error) {
	compositeKey, err := ctx.GetStub().CreateCompositeKey("MedicalRecord", []string{"recordID", formatRecordID(recordID)})
	if err != nil {
		return "", fmt.Errorf("failed to create composite key: %v", err)
	}
	return compositeKey, nil
}

func createAccessGrantCompositeKey(ctx contractapi.TransactionContextInterface, recordID uint64, accessor string) (string, error) {
	compositeKey, err := ctx.GetStub().CreateCompositeKey("AccessGrant", []string{"recordID", formatRecordID(recordID), "accessor", accessor})
	if err != nil {
		return "", fmt.Errorf("failed to create composite key: %v", err)
	}
	return compositeKey, nil
}

func formatRecordID(recordID uint64) string {
	return strconv.FormatUint(recordID, 10)
}
