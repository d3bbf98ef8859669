// Package account defines the 20-byte account identity used throughout the
// ledger for admins, signers, assets and recipients.
//
// Accounts are derived from public keys by hashing (keccak-256, last 20
// bytes), so the same identity scheme covers both secp256k1 and dilithium3
// keys. The zero account is never a valid participant.
package account

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

// Size is the length of an account identifier in bytes.
const Size = 20

// Account is a fixed-size account identifier.
type Account [Size]byte

// Zero is the all-zero account. It is reserved: no participant, signer or
// recipient may be the zero account.
var Zero Account

// IsZero reports whether a is the reserved zero account.
func (a Account) IsZero() bool {
	return a == Zero
}

// String returns the canonical 0x-prefixed lowercase hex form.
func (a Account) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Parse decodes a 0x-prefixed or bare hex account string.
func Parse(s string) (Account, error) {
	var a Account
	h := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(h)
	if err != nil {
		return Zero, fmt.Errorf("account: invalid hex %q: %w", s, err)
	}
	if len(b) != Size {
		return Zero, fmt.Errorf("account: want %d bytes, got %d", Size, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(s string) Account {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBytes builds an account from the last Size bytes of a keccak-256 digest.
func FromBytes(digest []byte) (Account, error) {
	var a Account
	if len(digest) < Size {
		return Zero, fmt.Errorf("account: digest too short (%d bytes)", len(digest))
	}
	copy(a[:], digest[len(digest)-Size:])
	return a, nil
}

// FromSecp256k1 derives the account for a secp256k1 public key:
// keccak-256 over the uncompressed point without the 0x04 prefix,
// keeping the last 20 bytes.
func FromSecp256k1(pub *secp256k1.PublicKey) Account {
	var a Account
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	sum := h.Sum(nil)
	copy(a[:], sum[len(sum)-Size:])
	return a
}

// FromDilithium3 derives the account for a dilithium3 public key:
// keccak-256 over the packed key bytes, keeping the last 20 bytes.
func FromDilithium3(pub *mode3.PublicKey) (Account, error) {
	b, err := pub.MarshalBinary()
	if err != nil {
		return Zero, fmt.Errorf("account: packing dilithium3 key: %w", err)
	}
	var a Account
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	sum := h.Sum(nil)
	copy(a[:], sum[len(sum)-Size:])
	return a, nil
}

// MarshalText implements encoding.TextMarshaler using the canonical hex form.
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Account) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
