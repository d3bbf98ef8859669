package ledger

import (
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
)

// Signature encodings accepted by the verifier, distinguished by length:
//
//   - secp256k1: 65-byte compact recoverable ECDSA signature (recovery id
//     first). The signing account is recovered from the digest.
//   - dilithium3: packed public key followed by the signature. The embedded
//     key is verified against the digest and then hashed to an account.
//
// Either way the caller never names the signer; the signature alone
// determines the account, which must match the project's configured signer.
const (
	secpSignatureLen      = 65
	dilithiumSignatureLen = mode3.PublicKeySize + mode3.SignatureSize
)

// recoverSigner returns the account that produced sig over digest.
func recoverSigner(digest [32]byte, sig []byte) (account.Account, error) {
	switch len(sig) {
	case secpSignatureLen:
		pub, _, err := secpecdsa.RecoverCompact(sig, digest[:])
		if err != nil {
			return account.Zero, wrapError(KindAuth, CodeInvalidSignature, "signature recovery failed", err)
		}
		return account.FromSecp256k1(pub), nil
	case dilithiumSignatureLen:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(sig[:mode3.PublicKeySize]); err != nil {
			return account.Zero, wrapError(KindAuth, CodeInvalidSignature, "invalid dilithium3 public key", err)
		}
		if !mode3.Verify(&pk, digest[:], sig[mode3.PublicKeySize:]) {
			return account.Zero, newError(KindAuth, CodeInvalidSignature, "dilithium3 signature did not verify")
		}
		acct, err := account.FromDilithium3(&pk)
		if err != nil {
			return account.Zero, wrapError(KindAuth, CodeInvalidSignature, "dilithium3 account derivation failed", err)
		}
		return acct, nil
	default:
		return account.Zero, newError(KindAuth, CodeInvalidSignature, "unsupported signature length")
	}
}

// verifySigner recovers the signing account and requires it to be signer.
func verifySigner(digest [32]byte, sig []byte, signer account.Account) error {
	recovered, err := recoverSigner(digest, sig)
	if err != nil {
		return err
	}
	if recovered != signer {
		return newError(KindAuth, CodeInvalidSignature, "signature not from the project signer")
	}
	return nil
}
