package chaincode

// AccessGrant marks whether an accessor was given access to a record
// at the moment the grant was written. It is not re-evaluated on
// ownership changes.
type AccessGrant struct {
	RecordID  uint64 `json:"recordID"`
	Accessor  string `json:"accessor"`
	HasAccess bool   `json:"hasAccess"`
}
