package ledger_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

func TestNew_Validation(t *testing.T) {
	base := func() ledger.Config {
		return ledger.Config{
			ID:        projectID,
			Name:      "p",
			Creator:   creator,
			Signer:    adminB, // any non-zero account
			Admins:    []account.Account{adminA},
			Threshold: 1,
			Fees:      &feeConfig{vault: vault},
			Bank:      assets.NewMemoryBank(),
		}
	}

	cases := []struct {
		name   string
		mutate func(*ledger.Config)
		code   ledger.Code
	}{
		{"zero id", func(c *ledger.Config) { c.ID = account.Zero }, ledger.CodeInvalidConfig},
		{"zero creator", func(c *ledger.Config) { c.Creator = account.Zero }, ledger.CodeInvalidConfig},
		{"zero signer", func(c *ledger.Config) { c.Signer = account.Zero }, ledger.CodeInvalidAddress},
		{"empty name", func(c *ledger.Config) { c.Name = "" }, ledger.CodeInvalidName},
		{"no admins", func(c *ledger.Config) { c.Admins = nil }, ledger.CodeInvalidConfig},
		{"zero admin", func(c *ledger.Config) { c.Admins = []account.Account{account.Zero} }, ledger.CodeInvalidAddress},
		{"duplicate admin", func(c *ledger.Config) { c.Admins = []account.Account{adminA, adminA} }, ledger.CodeAdminExists},
		{"threshold zero", func(c *ledger.Config) { c.Threshold = 0 }, ledger.CodeInvalidThreshold},
		{"threshold above members", func(c *ledger.Config) { c.Threshold = 2 }, ledger.CodeInvalidThreshold},
		{"nil bank", func(c *ledger.Config) { c.Bank = nil }, ledger.CodeInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			_, err := ledger.New(cfg)
			wantCode(t, err, tc.code)
		})
	}

	if _, err := ledger.New(base()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestSetName(t *testing.T) {
	f := newFixture(t)

	wantCode(t, f.project.SetName(outsider, "nope"), ledger.CodeNotAdmin)
	wantCode(t, f.project.SetName(adminA, ""), ledger.CodeInvalidName)

	long := make([]byte, ledger.MaxNameLen+1)
	for i := range long {
		long[i] = 'n'
	}
	wantCode(t, f.project.SetName(adminA, string(long)), ledger.CodeInvalidName)

	if err := f.project.SetName(adminA, "renamed"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	info, _ := f.project.Info()
	if info.Name != "renamed" {
		t.Fatalf("name = %q, want renamed", info.Name)
	}
}

func TestInfo_Snapshot(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB))
	info, err := f.project.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.ID != projectID || info.Creator != creator || info.Signer != f.signer {
		t.Fatalf("identity fields wrong: %+v", info)
	}
	if info.Threshold != 2 || len(info.Admins) != 2 || info.Paused {
		t.Fatalf("governance fields wrong: %+v", info)
	}
	if info.ProposalCount != 0 || info.PendingProposals != 0 {
		t.Fatalf("counters wrong: %+v", info)
	}
}

func TestBalancesBatch(t *testing.T) {
	token := assets.Asset(account.MustParse("0x00000000000000000000000000000000000070c1"))
	f := newFixture(t)
	f.fund(t, 100)

	pairs, err := f.project.BalancesBatch([]assets.Asset{assets.Native, token})
	if err != nil {
		t.Fatalf("BalancesBatch: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len = %d, want 2", len(pairs))
	}
	if !pairs[0].Withdrawal.Eq(uint256.NewInt(100)) {
		t.Fatalf("native withdrawal pool = %s, want 100", pairs[0].Withdrawal.Dec())
	}
	if !pairs[1].Payment.IsZero() || !pairs[1].Withdrawal.IsZero() {
		t.Fatalf("untouched token asset has non-zero pools")
	}
}

// reentrantBank wraps the memory bank and calls back into the project on
// Send, simulating a malicious transfer capability.
type reentrantBank struct {
	*assets.MemoryBank
	attack func() error
	got    error
}

func (b *reentrantBank) Send(asset assets.Asset, to account.Account, amount *uint256.Int) error {
	if b.attack != nil {
		b.got = b.attack()
		b.attack = nil
	}
	return b.MemoryBank.Send(asset, to, amount)
}

func TestReentrancy_CallbackIsRejected(t *testing.T) {
	bank := &reentrantBank{MemoryBank: assets.NewMemoryBank()}
	f := newFixture(t, func(cfg *ledger.Config) { cfg.Bank = bank })
	f.bank = nil // use the wrapping bank below

	bank.Mint(assets.Native, adminA, uint256.NewInt(100))
	if err := f.project.DepositToWithdrawalPool(adminA, assets.Native, uint256.NewInt(100)); err != nil {
		t.Fatalf("DepositToWithdrawalPool: %v", err)
	}

	// The withdrawal's Send triggers a nested withdrawal attempt.
	nested, nestedSig := f.withdrawal(payerU1, 10, "nested")
	bank.attack = func() error {
		return f.project.Withdraw(payerU1, nested, nestedSig)
	}

	req, sig := f.withdrawal(payerU1, 40, "outer")
	if err := f.project.Withdraw(payerU1, req, sig); err != nil {
		t.Fatalf("outer Withdraw: %v", err)
	}
	wantCode(t, bank.got, ledger.CodeReentrantCall)

	// Only the outer withdrawal applied.
	pair, _ := f.project.Balances(assets.Native)
	if !pair.Withdrawal.Eq(uint256.NewInt(60)) {
		t.Fatalf("withdrawal pool = %s, want 60", pair.Withdrawal.Dec())
	}
}

// failingBank rejects sends to a specific recipient.
type failingBank struct {
	*assets.MemoryBank
	failTo account.Account
}

var errSendRefused = errors.New("send refused")

func (b *failingBank) Send(asset assets.Asset, to account.Account, amount *uint256.Int) error {
	if to == b.failTo {
		return errSendRefused
	}
	return b.MemoryBank.Send(asset, to, amount)
}

func TestWithdraw_RollsBackOnTransferFailure(t *testing.T) {
	bank := &failingBank{MemoryBank: assets.NewMemoryBank(), failTo: payerU1}
	f := newFixture(t, func(cfg *ledger.Config) { cfg.Bank = bank })
	f.bank = nil

	bank.Mint(assets.Native, adminA, uint256.NewInt(100))
	if err := f.project.DepositToWithdrawalPool(adminA, assets.Native, uint256.NewInt(100)); err != nil {
		t.Fatalf("DepositToWithdrawalPool: %v", err)
	}

	req, sig := f.withdrawal(payerU1, 40, "refused")
	err := f.project.Withdraw(payerU1, req, sig)
	wantCode(t, err, ledger.CodeTransferFailed)
	if !errors.Is(err, errSendRefused) {
		t.Fatalf("cause not preserved: %v", err)
	}

	// Balance and serial must be fully restored.
	pair, _ := f.project.Balances(assets.Native)
	if !pair.Withdrawal.Eq(uint256.NewInt(100)) {
		t.Fatalf("withdrawal pool = %s, want 100", pair.Withdrawal.Dec())
	}
	used, _ := f.project.SerialUsed("refused")
	if used {
		t.Fatalf("serial consumed by failed withdrawal")
	}

	// The same request is replayable once the transfer path works.
	bank.failTo = account.Zero
	if err := f.project.Withdraw(payerU1, req, sig); err != nil {
		t.Fatalf("retry Withdraw: %v", err)
	}
}

func TestPay_FeeSendFailureRollsBack(t *testing.T) {
	bank := &failingBank{MemoryBank: assets.NewMemoryBank(), failTo: vault}
	f := newFixture(t, func(cfg *ledger.Config) { cfg.Bank = bank })
	f.bank = nil
	f.fees.rate = 100

	bank.Mint(assets.Native, payerU1, uint256.NewInt(1_000))
	req, sig := f.payment(1_000, "fee-fail")
	wantCode(t, f.project.Pay(payerU1, req, sig), ledger.CodeTransferFailed)

	// Funds returned, no pool credit, serial free.
	if got := bank.BalanceOf(assets.Native, payerU1); !got.Eq(uint256.NewInt(1_000)) {
		t.Fatalf("payer balance = %s, want 1000 back", got.Dec())
	}
	pair, _ := f.project.Balances(assets.Native)
	if !pair.Payment.IsZero() {
		t.Fatalf("payment pool = %s, want 0", pair.Payment.Dec())
	}
	used, _ := f.project.SerialUsed("fee-fail")
	if used {
		t.Fatalf("serial consumed by rolled-back payment")
	}
}
