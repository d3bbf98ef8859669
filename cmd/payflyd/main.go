// Command payflyd serves the custody ledger over gRPC.
//
// The daemon runs a single registry against an in-process bank and,
// optionally, a filesystem audit archive. It is meant for standalone and
// test deployments; production custody plugs a real transfer backend into
// the same registry.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/auditlog"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
	"github.com/paythefly/PayTheFlyContract-sub001/registry"
	"github.com/paythefly/PayTheFlyContract-sub001/rpc/ledgerrpc"
	"github.com/paythefly/PayTheFlyContract-sub001/storage"
	"github.com/paythefly/PayTheFlyContract-sub001/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("payflyd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7750", "listen address")
	archiveDir := fs.String("archive-dir", "", "audit archive directory (empty disables archiving)")
	feeRate := fs.Uint("fee-rate", 0, "payment fee in basis points (0..1000)")
	feeVault := fs.String("fee-vault", "", "fee vault account (required when fee-rate > 0)")
	debug := fs.Bool("debug", false, "enable debug logging")

	_ = fs.Parse(os.Args[1:])

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("service", "payflyd").Logger()

	var vault account.Account
	if *feeVault != "" {
		var err error
		if vault, err = account.Parse(*feeVault); err != nil {
			fmt.Fprintln(os.Stderr, "bad -fee-vault:", err)
			os.Exit(2)
		}
	}
	if *feeRate > ledger.MaxFeeRate {
		fmt.Fprintf(os.Stderr, "-fee-rate above %d basis points\n", ledger.MaxFeeRate)
		os.Exit(2)
	}

	var archive storage.CAS
	if *archiveDir != "" {
		a, err := localfs.New(*archiveDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("audit archive unavailable")
		}
		archive = a
	}

	reg, err := registry.New(registry.Config{
		FeeRate:  uint32(*feeRate),
		FeeVault: vault,
		Bank:     assets.NewMemoryBank(),
		Recorder: auditlog.New(archive, logger),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("registry setup failed")
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		logger.Fatal().Err(err).Str("listen", *listen).Msg("listen failed")
	}
	defer lis.Close()

	s := grpc.NewServer()
	ledgerrpc.RegisterLedgerServer(s, ledgerrpc.NewServer(reg, logger))

	logger.Info().
		Str("listen", lis.Addr().String()).
		Uint("feeRate", *feeRate).
		Bool("archive", archive != nil).
		Msg("payflyd listening")
	if err := s.Serve(lis); err != nil {
		logger.Fatal().Err(err).Msg("serve failed")
	}
}
