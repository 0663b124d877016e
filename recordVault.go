package main

import (
	"fmt"

	"github.com/MedVaultTech/RecordVault/chaincode"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Método de start quando o chaincode leva deploy.
func main() {
	vaultChaincode, err := contractapi.NewChaincode(&chaincode.RecordContract{})
	if err != nil {
		fmt.Printf("Error creating RecordVault chaincode: %v", err)
		return
	}

	if err := vaultChaincode.Start(); err != nil {
		fmt.Printf("Error starting RecordVault chaincode: %v", err)
	}
}
