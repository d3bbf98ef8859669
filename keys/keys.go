// Package keys provides key generation and request-signing helpers for the
// off-line signer role.
//
// These are client-side conveniences: the engine itself only ever verifies.
// Two schemes are supported, matching the verifier: secp256k1 (recoverable
// compact ECDSA) and dilithium3 (post-quantum; the signature blob carries
// the public key).
package keys

import (
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

// GenerateSecp256k1 returns a fresh signing key and its account.
func GenerateSecp256k1() (*secp256k1.PrivateKey, account.Account, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, account.Zero, err
	}
	return priv, account.FromSecp256k1(priv.PubKey()), nil
}

// SignDigest signs a 32-byte digest with a secp256k1 key. The result is the
// 65-byte compact recoverable form the verifier expects.
func SignDigest(priv *secp256k1.PrivateKey, digest [32]byte) []byte {
	return secpecdsa.SignCompact(priv, digest[:], false)
}

// SignPayment authorizes a payment request against a project.
func SignPayment(priv *secp256k1.PrivateKey, project account.Account, req ledger.PaymentRequest) []byte {
	return SignDigest(priv, ledger.PaymentDigest(project, req))
}

// SignWithdrawal authorizes a withdrawal request against a project.
func SignWithdrawal(priv *secp256k1.PrivateKey, project account.Account, req ledger.WithdrawalRequest) []byte {
	return SignDigest(priv, ledger.WithdrawalDigest(project, req))
}

// GenerateDilithium3 returns a fresh dilithium3 keypair and its account.
func GenerateDilithium3(rand io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, account.Account, error) {
	pub, priv, err := mode3.GenerateKey(rand)
	if err != nil {
		return nil, nil, account.Zero, err
	}
	acct, err := account.FromDilithium3(pub)
	if err != nil {
		return nil, nil, account.Zero, err
	}
	return pub, priv, acct, nil
}

// SignDigestDilithium3 signs a 32-byte digest and returns the packed
// pubkey-plus-signature blob the verifier expects.
func SignDigestDilithium3(pub *mode3.PublicKey, priv *mode3.PrivateKey, digest [32]byte) ([]byte, error) {
	pk, err := pub.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(priv, digest[:], sig)
	return append(pk, sig...), nil
}

// SignPaymentDilithium3 authorizes a payment request with a dilithium3 key.
func SignPaymentDilithium3(pub *mode3.PublicKey, priv *mode3.PrivateKey, project account.Account, req ledger.PaymentRequest) ([]byte, error) {
	return SignDigestDilithium3(pub, priv, ledger.PaymentDigest(project, req))
}

// SignWithdrawalDilithium3 authorizes a withdrawal request with a dilithium3
// key.
func SignWithdrawalDilithium3(pub *mode3.PublicKey, priv *mode3.PrivateKey, project account.Account, req ledger.WithdrawalRequest) ([]byte, error) {
	return SignDigestDilithium3(pub, priv, ledger.WithdrawalDigest(project, req))
}
