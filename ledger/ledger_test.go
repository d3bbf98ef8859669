package ledger_test

import (
	"sync"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/keys"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

// Shared fixture accounts. Governance tests need plain accounts; settlement
// tests need a real signer keypair.
var (
	projectID = account.MustParse("0x00000000000000000000000000000000deadbeef")
	creator   = account.MustParse("0x00000000000000000000000000000000000000c0")
	adminA    = account.MustParse("0x000000000000000000000000000000000000000a")
	adminB    = account.MustParse("0x000000000000000000000000000000000000000b")
	adminC    = account.MustParse("0x000000000000000000000000000000000000000c")
	payerU1   = account.MustParse("0x00000000000000000000000000000000000000e1")
	payerU2   = account.MustParse("0x00000000000000000000000000000000000000e2")
	vault     = account.MustParse("0x00000000000000000000000000000000000000fe")
	outsider  = account.MustParse("0x00000000000000000000000000000000000000ff")
)

// clock is a settable test clock.
type clock struct {
	mu  sync.Mutex
	cur time.Time
}

func newClock() *clock {
	return &clock{cur: time.Unix(1_700_000_000, 0)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.cur = c.cur.Add(d)
	c.mu.Unlock()
}

func (c *clock) unix() int64 {
	return c.now().Unix()
}

// feeConfig is a mutable FeeConfig stub.
type feeConfig struct {
	rate  uint32
	vault account.Account
}

func (f *feeConfig) FeeRate() uint32           { return f.rate }
func (f *feeConfig) FeeVault() account.Account { return f.vault }

// recordSink captures emitted records.
type recordSink struct {
	mu   sync.Mutex
	recs []ledger.Record
}

func (s *recordSink) Record(rec ledger.Record) {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
}

func (s *recordSink) last(t *testing.T) ledger.Record {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.recs) == 0 {
		t.Fatalf("no records emitted")
	}
	return s.recs[len(s.recs)-1]
}

func (s *recordSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

// fixture bundles a project with its collaborators and signer key.
type fixture struct {
	project *ledger.Project
	bank    *assets.MemoryBank
	clock   *clock
	fees    *feeConfig
	sink    *recordSink
	signKey *secp256k1.PrivateKey
	signer  account.Account
}

type fixtureOpt func(*ledger.Config)

func withAdmins(threshold int, admins ...account.Account) fixtureOpt {
	return func(cfg *ledger.Config) {
		cfg.Admins = admins
		cfg.Threshold = threshold
	}
}

func newFixture(t *testing.T, opts ...fixtureOpt) *fixture {
	t.Helper()
	priv, signer, err := keys.GenerateSecp256k1()
	if err != nil {
		t.Fatalf("GenerateSecp256k1: %v", err)
	}
	clk := newClock()
	bank := assets.NewMemoryBank()
	fees := &feeConfig{rate: 0, vault: vault}
	sink := &recordSink{}
	cfg := ledger.Config{
		ID:        projectID,
		Name:      "unit-test-project",
		Creator:   creator,
		Signer:    signer,
		Admins:    []account.Account{adminA},
		Threshold: 1,
		Fees:      fees,
		Bank:      bank,
		Recorder:  sink,
		Now:       clk.now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	project, err := ledger.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{
		project: project,
		bank:    bank,
		clock:   clk,
		fees:    fees,
		sink:    sink,
		signKey: priv,
		signer:  signer,
	}
}

// payment builds a signed payment request for amount with the fixture's key.
func (f *fixture) payment(amount uint64, serial string) (ledger.PaymentRequest, []byte) {
	req := ledger.PaymentRequest{
		Asset:    assets.Native,
		Amount:   uint256.NewInt(amount),
		SerialNo: serial,
		Deadline: f.clock.unix() + 3600,
	}
	return req, keys.SignPayment(f.signKey, f.project.ID(), req)
}

// withdrawal builds a signed withdrawal request bound to user.
func (f *fixture) withdrawal(user account.Account, amount uint64, serial string) (ledger.WithdrawalRequest, []byte) {
	req := ledger.WithdrawalRequest{
		Asset:    assets.Native,
		Amount:   uint256.NewInt(amount),
		SerialNo: serial,
		Deadline: f.clock.unix() + 3600,
		User:     user,
	}
	return req, keys.SignWithdrawal(f.signKey, f.project.ID(), req)
}

// fund seeds the withdrawal pool via an admin deposit.
func (f *fixture) fund(t *testing.T, amount uint64) {
	t.Helper()
	f.bank.Mint(assets.Native, adminA, uint256.NewInt(amount))
	if err := f.project.DepositToWithdrawalPool(adminA, assets.Native, uint256.NewInt(amount)); err != nil {
		t.Fatalf("DepositToWithdrawalPool: %v", err)
	}
}

// pause drives the project into the paused state through governance.
func (f *fixture) pause(t *testing.T) {
	t.Helper()
	id, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.clock.unix()+7200)
	if err != nil {
		t.Fatalf("CreateProposal(Pause): %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal(Pause): %v", err)
	}
}

func wantCode(t *testing.T, err error, code ledger.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	if got := ledger.CodeOf(err); got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}
