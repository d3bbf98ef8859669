package ledger

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// Protocol identity bound into every request digest. Changing either value
// invalidates all outstanding signed requests, which is exactly the point.
const (
	ProtocolName    = "PayTheFly"
	ProtocolVersion = "1"
)

// PaymentRequest is the signed payload authorizing a payment into a project.
// Amount is in the asset's smallest unit. Deadline is a unix timestamp in
// seconds; the request is invalid once now exceeds it.
type PaymentRequest struct {
	Asset    assets.Asset
	Amount   *uint256.Int
	SerialNo string
	Deadline int64
}

// WithdrawalRequest is the signed payload authorizing a release from the
// withdrawal pool. User binds the request to the account that must submit
// it; a withdrawal presented by anyone else is rejected before signature
// verification.
type WithdrawalRequest struct {
	Asset    assets.Asset
	Amount   *uint256.Int
	SerialNo string
	Deadline int64
	User     account.Account
}

// domainSeparator binds the protocol name, version and the project identity.
// It depends on nothing caller-mutable, so digests are stable across calls.
func domainSeparator(project account.Account) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(ProtocolName))
	h.Write([]byte{0})
	h.Write([]byte(ProtocolVersion))
	h.Write([]byte{0})
	h.Write(project[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// requestDigest is the two-level construction shared by both request kinds:
// keccak256(0x19 0x01 || domainSeparator || structHash). The leading bytes
// make the digest unambiguous against any flat field encoding.
func requestDigest(project account.Account, structHash [32]byte) [32]byte {
	domain := domainSeparator(project)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte{0x19, 0x01})
	h.Write(domain[:])
	h.Write(structHash[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashFields(tag string, asset assets.Asset, amount *uint256.Int, serial string, deadline int64, extra []byte) [32]byte {
	var deadlineBytes [8]byte
	binary.BigEndian.PutUint64(deadlineBytes[:], uint64(deadline))
	amountBytes := amount.Bytes32()

	// The serial is hashed before inclusion so its variable length cannot
	// shift later fields.
	sh := sha3.NewLegacyKeccak256()
	sh.Write([]byte(serial))
	serialHash := sh.Sum(nil)

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(tag))
	h.Write([]byte{0})
	h.Write(asset[:])
	h.Write(amountBytes[:])
	h.Write(serialHash)
	h.Write(deadlineBytes[:])
	h.Write(extra)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// PaymentDigest returns the digest a signer must sign to authorize req
// against the given project.
func PaymentDigest(project account.Account, req PaymentRequest) [32]byte {
	return requestDigest(project, hashFields("PAYMENT", req.Asset, req.Amount, req.SerialNo, req.Deadline, nil))
}

// WithdrawalDigest returns the digest a signer must sign to authorize req
// against the given project. It additionally binds the submitting user.
func WithdrawalDigest(project account.Account, req WithdrawalRequest) [32]byte {
	return requestDigest(project, hashFields("WITHDRAWAL", req.Asset, req.Amount, req.SerialNo, req.Deadline, req.User[:]))
}
