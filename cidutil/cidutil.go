// Package cidutil derives content identifiers for audit records.
//
// Records are addressed by CIDv1 with the "raw" multicodec and a keccak-256
// multihash, keeping the archive in the same hash family as the ledger's
// request digests.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// RecordCID returns the CIDv1 (raw + keccak-256) for canonical record bytes.
func RecordCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.KECCAK_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// RecordCIDString is RecordCID as a string, or "" if derivation fails.
// Derivation only fails for invalid hash parameters, which are fixed here.
func RecordCIDString(data []byte) string {
	id, err := RecordCID(data)
	if err != nil {
		return ""
	}
	return id.String()
}
