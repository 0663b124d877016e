package main

import (
	"bytes"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Configurações para encontrar o certificado. Vamos manter simples por
// agora, por isso vamos utilizar a rede de testes.
const (
	mspID        = "Org1MSP"
	cryptoPath   = "../test-network/organizations/peerOrganizations/org1.example.com"
	certPath     = cryptoPath + "/users/User1@org1.example.com/msp/signcerts/User1@org1.example.com-cert.pem"
	keyPath      = cryptoPath + "/users/User1@org1.example.com/msp/keystore/"
	tlsCertPath  = cryptoPath + "/peers/peer0.org1.example.com/tls/ca.crt"
	peerEndpoint = "localhost:7051"
	gatewayPeer  = "peer0.org1.example.com"
)

func main() {
	// The gRPC client connection should be shared by all Gateway connections to this endpoint
	clientConnection := newGrpcConnection()
	defer clientConnection.Close()

	id := newIdentity()
	sign := newSign()

	// Create a Gateway connection for a specific client identity
	gw, err := client.Connect(
		id,
		client.WithSign(sign),
		client.WithClientConnection(clientConnection),
		// Default timeouts for different gRPC calls
		client.WithEvaluateTimeout(5*time.Second),
		client.WithEndorseTimeout(15*time.Second),
		client.WithSubmitTimeout(5*time.Second),
		client.WithCommitStatusTimeout(1*time.Minute),
	)
	if err != nil {
		panic(err)
	}
	defer gw.Close()

	// Override default values for chaincode and channel name as they may differ in testing contexts.
	chaincodeName := "recordvault"
	if ccname := os.Getenv("CHAINCODE_NAME"); ccname != "" {
		chaincodeName = ccname
	}

	channelName := "mychannel"
	if cname := os.Getenv("CHANNEL_NAME"); cname != "" {
		channelName = cname
	}

	network := gw.GetNetwork(channelName)
	contract := network.GetContract(chaincodeName)

	recordID := CreateRecord(contract, "PID001", 2048, "Routine checkup", []string{"cardiology"})

	GetRecordOwner(contract, recordID)
	HasAccess(contract, recordID, "practitionerB")

	TransferOwnership(contract, recordID, "practitionerB")
	GetRecordOwner(contract, recordID)

	ReadMedicalRecord(contract, recordID)
	GetTotalRecords(contract)
}

// Submit a transaction synchronously, blocking until it has been committed to the ledger.
// Relembro que estas chamadas só retornam quando a ledger é atualizada.
func CreateRecord(contract *client.Contract, patientCode string, dataSize uint64, notes string, tags []string) uint64 {
	fmt.Printf("\n--> Submit Transaction: Create a new medical record in the vault. \n")

	submitResult, err := contract.SubmitTransaction("CreateRecord", patientCode, uint64ToString(dataSize), notes, tagsToString(tags))
	if err != nil {
		panic(fmt.Errorf("failed to submit transaction: %w", err))
	}

	recordID, err := strconv.ParseUint(string(submitResult), 10, 64)
	if err != nil {
		panic(fmt.Errorf("failed to parse record ID: %w", err))
	}

	fmt.Printf("*** Transaction committed successfully, record ID: %d\n", recordID)

	return recordID
}

func TransferOwnership(contract *client.Contract, recordID uint64, newOwner string) {
	fmt.Printf("\n--> Submit Transaction: Transfer the record to another practitioner. \n")

	_, err := contract.SubmitTransaction("TransferOwnership", uint64ToString(recordID), newOwner)
	if err != nil {
		panic(fmt.Errorf("failed to submit transaction: %w", err))
	}

	fmt.Printf("*** Transaction committed successfully\n")
}

func UpdateRecordMetadata(contract *client.Contract, recordID uint64, patientCode string, dataSize uint64, notes string, tags []string) {
	fmt.Printf("\n--> Submit Transaction: Update the mutable record fields. \n")

	_, err := contract.SubmitTransaction("UpdateRecordMetadata", uint64ToString(recordID), patientCode, uint64ToString(dataSize), notes, tagsToString(tags))
	if err != nil {
		panic(fmt.Errorf("failed to submit transaction: %w", err))
	}

	fmt.Printf("*** Transaction committed successfully\n")
}

// Evaluate a transaction to query ledger state.
func ReadMedicalRecord(contract *client.Contract, recordID uint64) {
	fmt.Println("\n--> Evaluate Transaction: Read the whole medical record")

	evaluateResult, err := contract.EvaluateTransaction("ReadMedicalRecord", uint64ToString(recordID))
	if err != nil {
		panic(fmt.Errorf("failed to evaluate transaction: %w", err))
	}
	result := formatJSON(evaluateResult)

	fmt.Printf("*** Result:%s\n", result)
}

func GetRecordOwner(contract *client.Contract, recordID uint64) {
	fmt.Println("\n--> Evaluate Transaction: Get the current record owner")

	evaluateResult, err := contract.EvaluateTransaction("GetRecordOwner", uint64ToString(recordID))
	if err != nil {
		panic(fmt.Errorf("failed to evaluate transaction: %w", err))
	}

	fmt.Printf("*** Result:%s\n", string(evaluateResult))
}

func HasAccess(contract *client.Contract, recordID uint64, accessor string) {
	fmt.Println("\n--> Evaluate Transaction: Check the stored access grant for an accessor")

	evaluateResult, err := contract.EvaluateTransaction("HasAccess", uint64ToString(recordID), accessor)
	if err != nil {
		// Sem linha de acesso a chamada falha, não devolve false.
		fmt.Printf("*** No grant row: %v\n", err)
		return
	}

	fmt.Printf("*** Result:%s\n", string(evaluateResult))
}

func GetTotalRecords(contract *client.Contract) {
	fmt.Println("\n--> Evaluate Transaction: Get how many records were ever created")

	evaluateResult, err := contract.EvaluateTransaction("GetTotalRecords")
	if err != nil {
		panic(fmt.Errorf("failed to evaluate transaction: %w", err))
	}

	fmt.Printf("*** Result:%s\n", string(evaluateResult))
}

func uint64ToString(value uint64) string {
	return strconv.FormatUint(value, 10)
}

func tagsToString(tags []string) string {
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		panic(fmt.Errorf("failed to marshal tags: %w", err))
	}
	return string(tagsJSON)
}

// Format JSON data
func formatJSON(data []byte) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err != nil {
		panic(fmt.Errorf("failed to parse JSON: %w", err))
	}
	return prettyJSON.String()
}

// newGrpcConnection creates a gRPC connection to the Gateway server.
func newGrpcConnection() *grpc.ClientConn {
	certificate, err := loadCertificate(tlsCertPath)
	if err != nil {
		panic(err)
	}

	certPool := x509.NewCertPool()
	certPool.AddCert(certificate)
	transportCredentials := credentials.NewClientTLSFromCert(certPool, gatewayPeer)

	connection, err := grpc.Dial(peerEndpoint, grpc.WithTransportCredentials(transportCredentials))
	if err != nil {
		panic(fmt.Errorf("failed to create gRPC connection: %w", err))
	}

	return connection
}

// newIdentity creates a client identity for this Gateway connection using an X.509 certificate.
func newIdentity() *identity.X509Identity {
	certificate, err := loadCertificate(certPath)
	if err != nil {
		panic(err)
	}

	id, err := identity.NewX509Identity(mspID, certificate)
	if err != nil {
		panic(err)
	}

	return id
}

func loadCertificate(filename string) (*x509.Certificate, error) {
	certificatePEM, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file: %w", err)
	}
	return identity.CertificateFromPEM(certificatePEM)
}

// newSign creates a function that generates a digital signature from a message digest using a private key.
func newSign() identity.Sign {
	files, err := os.ReadDir(keyPath)
	if err != nil {
		panic(fmt.Errorf("failed to read private key directory: %w", err))
	}

	privateKeyPEM, err := os.ReadFile(path.Join(keyPath, files[0].Name()))
	if err != nil {
		panic(fmt.Errorf("failed to read private key file: %w", err))
	}

	privateKey, err := identity.PrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		panic(err)
	}

	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		panic(err)
	}

	return sign
}
