package chaincode

import (
	"errors"
)

// Failure kinds returned by the vault. Every failure is wrapped around
// one of these sentinels so callers can branch with errors.Is.
var (
	ErrInvalidField         = errors.New("field value out of bounds")
	ErrInvalidTagCollection = errors.New("invalid classification tag collection")
	ErrRecordNotFound       = errors.New("record not found")
	ErrAuthFailed           = errors.New("caller is not the record owner")
	ErrForbiddenOperation   = errors.New("no access grant for this record and accessor")
)
