// Command payfly-keygen generates signer keypairs for the custody ledger.
//
// The private key is printed as hex on stdout together with the derived
// account; keep the key off-line, only the account goes on-ledger.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/paythefly/PayTheFlyContract-sub001/keys"
)

func main() {
	fs := flag.NewFlagSet("payfly-keygen", flag.ExitOnError)
	scheme := fs.String("scheme", "secp256k1", "signature scheme: secp256k1 or dilithium3")

	_ = fs.Parse(os.Args[1:])

	switch *scheme {
	case "secp256k1":
		priv, acct, err := keys.GenerateSecp256k1()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("scheme:  secp256k1\naccount: %s\nprivate: %s\n", acct, hex.EncodeToString(priv.Serialize()))
	case "dilithium3":
		_, priv, acct, err := keys.GenerateDilithium3(rand.Reader)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sk, err := priv.MarshalBinary()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("scheme:  dilithium3\naccount: %s\nprivate: %s\n", acct, hex.EncodeToString(sk))
	default:
		fmt.Fprintf(os.Stderr, "unknown scheme %q\n", *scheme)
		os.Exit(2)
	}
}
