// Package storage defines the archive interface for settled audit records.
package storage

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// Archive failure modes. Backends return these (or wrap them) so callers
// can branch without knowing the backend.
var (
	ErrNotFound    = errors.New("storage: not found")
	ErrInvalidCID  = errors.New("storage: invalid cid")
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	ErrImmutable   = errors.New("storage: immutable object mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// CAS is a content-addressable archive for audit records.
//
// Contract:
//   - Put is idempotent; writing bytes that already exist returns the same
//     CID and no error.
//   - Stored objects are immutable. A backend that finds different bytes
//     under an object's path reports ErrImmutable.
//   - CIDs derive from the bytes written; callers supply canonical bytes.
//   - Get returns ErrNotFound for an absent CID and ErrCIDMismatch when the
//     stored bytes no longer hash to the requested CID.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
