package chaincode

import (
	"crypto/x509"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// testStub is an in-memory world state covering the slice of the stub
// interface the contract touches. Any other method hits the embedded
// nil interface and panics, which is what we want in a test.
type testStub struct {
	shim.ChaincodeStubInterface
	state       map[string][]byte
	txTimestamp *timestamppb.Timestamp
}

func newTestStub() *testStub {
	return &testStub{
		state:       map[string][]byte{},
		txTimestamp: timestamppb.New(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func (s *testStub) GetState(key string) ([]byte, error) {
	return s.state[key], nil
}

func (s *testStub) PutState(key string, value []byte) error {
	s.state[key] = value
	return nil
}

// Same layout the shim produces: U+0000 delimited namespace.
func (s *testStub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	compositeKey := string(rune(0)) + objectType + string(rune(0))
	for _, attribute := range attributes {
		compositeKey += attribute + string(rune(0))
	}
	return compositeKey, nil
}

func (s *testStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return s.txTimestamp, nil
}

// testIdentity carries a fixed principal string; the contract only
// ever compares it for equality.
type testIdentity struct {
	id string
}

func (i *testIdentity) GetID() (string, error)    { return i.id, nil }
func (i *testIdentity) GetMSPID() (string, error) { return "Org1MSP", nil }

func (i *testIdentity) GetAttributeValue(string) (string, bool, error) { return "", false, nil }
func (i *testIdentity) AssertAttributeValue(string, string) error     { return nil }
func (i *testIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

// testContext wires the stub and a caller identity together. Swapping
// the caller between calls emulates different practitioners operating
// on the same world state.
type testContext struct {
	stub   *testStub
	caller *testIdentity
}

func (c *testContext) GetStub() shim.ChaincodeStubInterface  { return c.stub }
func (c *testContext) GetClientIdentity() cid.ClientIdentity { return c.caller }

func (c *testContext) setCaller(id string) {
	c.caller = &testIdentity{id: id}
}

func newTestContext(caller string) *testContext {
	return &testContext{
		stub:   newTestStub(),
		caller: &testIdentity{id: caller},
	}
}
