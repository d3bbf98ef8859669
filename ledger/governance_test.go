package ledger_test

import (
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/keys"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

func (f *fixture) deadline() int64 {
	return f.clock.unix() + 7200
}

func TestProposal_SingleAdminPauseExecutesImmediately(t *testing.T) {
	f := newFixture(t) // threshold=1, admins={A}

	id, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.clock.unix()+2*3600)
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}
	info, err := f.project.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !info.Paused {
		t.Fatalf("project not paused after executed Pause")
	}
	if info.PendingProposals != 0 {
		t.Fatalf("pending = %d, want 0", info.PendingProposals)
	}
}

func TestProposal_AdminWithdrawNeedsQuorum(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB))
	recipient := outsider

	// Seed the payment pool with 5 via a real payment.
	f.bank.Mint(assets.Native, payerU1, uint256.NewInt(5))
	req, sig := f.payment(5, "seed")
	if err := f.project.Pay(payerU1, req, sig); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	id, err := f.project.CreateProposal(adminA, ledger.AdminWithdraw{
		Asset:     assets.Native,
		Amount:    uint256.NewInt(5),
		Recipient: recipient,
	}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}

	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeThresholdNotReached)

	if err := f.project.ConfirmProposal(adminB, id); err != nil {
		t.Fatalf("ConfirmProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}

	pair, _ := f.project.Balances(assets.Native)
	if !pair.Payment.IsZero() {
		t.Fatalf("payment pool = %s, want 0", pair.Payment.Dec())
	}
	if got := f.bank.BalanceOf(assets.Native, recipient); !got.Eq(uint256.NewInt(5)) {
		t.Fatalf("recipient received %s, want 5", got.Dec())
	}
}

func TestProposal_QuorumCountsOnlyActiveAdmins(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB, adminC))

	// B confirms a pending proposal, then governance removes B. The stored
	// confirmation must stop counting toward quorum.
	target, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal(Pause): %v", err)
	}
	if err := f.project.ConfirmProposal(adminB, target); err != nil {
		t.Fatalf("ConfirmProposal: %v", err)
	}

	removal, err := f.project.CreateProposal(adminA, ledger.RemoveAdmin{Admin: adminB}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal(RemoveAdmin): %v", err)
	}
	if err := f.project.ConfirmProposal(adminC, removal); err != nil {
		t.Fatalf("ConfirmProposal(removal): %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, removal); err != nil {
		t.Fatalf("ExecuteProposal(removal): %v", err)
	}

	// A + (removed B) is no longer a quorum of 2.
	wantCode(t, f.project.ExecuteProposal(adminA, target), ledger.CodeThresholdNotReached)

	info, err := f.project.Proposal(target)
	if err != nil {
		t.Fatalf("Proposal: %v", err)
	}
	if info.Confirmations != 1 {
		t.Fatalf("effective confirmations = %d, want 1", info.Confirmations)
	}
	ok, err := f.project.HasConfirmed(target, adminB)
	if err != nil {
		t.Fatalf("HasConfirmed: %v", err)
	}
	if ok {
		t.Fatalf("removed admin still reported as confirmer")
	}

	// C's confirmation restores quorum.
	if err := f.project.ConfirmProposal(adminC, target); err != nil {
		t.Fatalf("ConfirmProposal(C): %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, target); err != nil {
		t.Fatalf("ExecuteProposal(target): %v", err)
	}
}

func TestProposal_ConfirmRevoke(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB))

	id, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}

	// Creator auto-confirms.
	wantCode(t, f.project.ConfirmProposal(adminA, id), ledger.CodeAlreadyConfirmed)
	wantCode(t, f.project.RevokeConfirmation(adminB, id), ledger.CodeNotConfirmed)
	wantCode(t, f.project.ConfirmProposal(outsider, id), ledger.CodeNotAdmin)

	if err := f.project.ConfirmProposal(adminB, id); err != nil {
		t.Fatalf("ConfirmProposal: %v", err)
	}
	if err := f.project.RevokeConfirmation(adminB, id); err != nil {
		t.Fatalf("RevokeConfirmation: %v", err)
	}
	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeThresholdNotReached)
}

func TestProposal_CancelOnlyByProposer(t *testing.T) {
	f := newFixture(t, withAdmins(1, adminA, adminB))

	id, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	wantCode(t, f.project.CancelProposal(adminB, id), ledger.CodeNotProposer)
	if err := f.project.CancelProposal(adminA, id); err != nil {
		t.Fatalf("CancelProposal: %v", err)
	}
	// Terminal: no transition out.
	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeProposalClosed)
	wantCode(t, f.project.ConfirmProposal(adminB, id), ledger.CodeProposalClosed)
	wantCode(t, f.project.CancelProposal(adminA, id), ledger.CodeProposalClosed)

	rec := f.sink.last(t)
	if rec.Kind != ledger.RecordProposalCancelled || rec.Proposal != id {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestProposal_DurationBounds(t *testing.T) {
	f := newFixture(t)
	now := f.clock.unix()

	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now+1800); !ledger.IsCode(err, ledger.CodeInvalidProposalDuration) {
		t.Fatalf("30m deadline accepted: %v", err)
	}
	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now+31*24*3600); !ledger.IsCode(err, ledger.CodeInvalidProposalDuration) {
		t.Fatalf("31d deadline accepted: %v", err)
	}
	// ~584 years out: the delta in nanoseconds exceeds int64 and would wrap
	// back inside the window if the check converted before comparing.
	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now+18_446_748_000); !ledger.IsCode(err, ledger.CodeInvalidProposalDuration) {
		t.Fatalf("far-future deadline accepted: %v", err)
	}
	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now-18_446_748_000); !ledger.IsCode(err, ledger.CodeInvalidProposalDuration) {
		t.Fatalf("far-past deadline accepted: %v", err)
	}
	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now+3600); err != nil {
		t.Fatalf("1h deadline rejected: %v", err)
	}
	if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, now+30*24*3600); err != nil {
		t.Fatalf("30d deadline rejected: %v", err)
	}
}

func TestProposal_ExpiryBlocksConfirmAndExecuteButNotRevoke(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB))

	id, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.clock.unix()+3600)
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	f.clock.advance(2 * time.Hour)

	wantCode(t, f.project.ConfirmProposal(adminB, id), ledger.CodeProposalExpired)
	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeProposalExpired)
	if err := f.project.RevokeConfirmation(adminA, id); err != nil {
		t.Fatalf("RevokeConfirmation on expired proposal: %v", err)
	}
}

func TestProposal_AddAdminBound(t *testing.T) {
	admins := make([]account.Account, ledger.MaxAdmins)
	for i := range admins {
		admins[i] = acctN(byte(i + 1))
	}
	f := newFixture(t, withAdmins(1, admins...))

	id, err := f.project.CreateProposal(admins[0], ledger.AddAdmin{Admin: acctN(200)}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	wantCode(t, f.project.ExecuteProposal(admins[0], id), ledger.CodeTooManyAdmins)

	// The failed execution leaves the proposal pending.
	info, err := f.project.Proposal(id)
	if err != nil {
		t.Fatalf("Proposal: %v", err)
	}
	if info.Status != ledger.StatusPending {
		t.Fatalf("status = %s, want pending", info.Status)
	}
}

func TestProposal_RemoveAdminRespectsThreshold(t *testing.T) {
	f := newFixture(t, withAdmins(2, adminA, adminB))

	id, err := f.project.CreateProposal(adminA, ledger.RemoveAdmin{Admin: adminB}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ConfirmProposal(adminB, id); err != nil {
		t.Fatalf("ConfirmProposal: %v", err)
	}
	// Removing B would leave 1 admin under a threshold of 2.
	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeThresholdTooHigh)
}

func TestProposal_ChangeThreshold(t *testing.T) {
	f := newFixture(t, withAdmins(1, adminA, adminB))

	id, err := f.project.CreateProposal(adminA, ledger.ChangeThreshold{Threshold: 2}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}
	info, _ := f.project.Info()
	if info.Threshold != 2 {
		t.Fatalf("threshold = %d, want 2", info.Threshold)
	}

	id2, err := f.project.CreateProposal(adminA, ledger.ChangeThreshold{Threshold: 3}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ConfirmProposal(adminB, id2); err != nil {
		t.Fatalf("ConfirmProposal: %v", err)
	}
	wantCode(t, f.project.ExecuteProposal(adminA, id2), ledger.CodeInvalidThreshold)
}

func TestProposal_SetSignerRotatesAuthorization(t *testing.T) {
	f := newFixture(t)
	newKey, newSigner, err := keys.GenerateSecp256k1()
	if err != nil {
		t.Fatalf("GenerateSecp256k1: %v", err)
	}

	id, err := f.project.CreateProposal(adminA, ledger.SetSigner{Signer: newSigner}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}

	f.bank.Mint(assets.Native, payerU1, uint256.NewInt(200))

	// Requests signed by the old key are now rejected.
	req, oldSig := f.payment(100, "rotated-old")
	wantCode(t, f.project.Pay(payerU1, req, oldSig), ledger.CodeInvalidSignature)

	req2, _ := f.payment(100, "rotated-new")
	if err := f.project.Pay(payerU1, req2, keys.SignPayment(newKey, f.project.ID(), req2)); err != nil {
		t.Fatalf("Pay with rotated signer: %v", err)
	}
}

func TestProposal_EmergencyWithdrawDrainsBothPools(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 300)
	f.bank.Mint(assets.Native, payerU1, uint256.NewInt(700))
	req, sig := f.payment(700, "seed-emergency")
	if err := f.project.Pay(payerU1, req, sig); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	id, err := f.project.CreateProposal(adminA, ledger.EmergencyWithdraw{
		Asset:     assets.Native,
		Recipient: outsider,
	}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}

	pair, _ := f.project.Balances(assets.Native)
	if !pair.Payment.IsZero() || !pair.Withdrawal.IsZero() {
		t.Fatalf("pools not drained: payment=%s withdrawal=%s", pair.Payment.Dec(), pair.Withdrawal.Dec())
	}
	if got := f.bank.BalanceOf(assets.Native, outsider); !got.Eq(uint256.NewInt(1_000)) {
		t.Fatalf("recipient received %s, want 1000", got.Dec())
	}

	// The execution record states the drained total, like every other
	// fund-moving operation.
	rec := f.sink.last(t)
	if rec.Kind != ledger.RecordProposalExecuted || rec.Op != ledger.OpEmergencyWithdraw {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Payee != outsider {
		t.Fatalf("record payee = %s, want %s", rec.Payee, outsider)
	}
	if rec.Amount == nil || !rec.Amount.Eq(uint256.NewInt(1_000)) {
		t.Fatalf("record amount = %v, want 1000", rec.Amount)
	}

	// Draining again fails: both pools are empty.
	id2, err := f.project.CreateProposal(adminA, ledger.EmergencyWithdraw{
		Asset:     assets.Native,
		Recipient: outsider,
	}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	wantCode(t, f.project.ExecuteProposal(adminA, id2), ledger.CodeInvalidAmount)
}

func TestProposal_WithdrawFromPool(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 500)

	id, err := f.project.CreateProposal(adminA, ledger.WithdrawFromPool{
		Asset:     assets.Native,
		Amount:    uint256.NewInt(200),
		Recipient: outsider,
	}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}
	pair, _ := f.project.Balances(assets.Native)
	if !pair.Withdrawal.Eq(uint256.NewInt(300)) {
		t.Fatalf("withdrawal pool = %s, want 300", pair.Withdrawal.Dec())
	}
}

func TestProposal_InsufficientBalanceLeavesProposalPending(t *testing.T) {
	f := newFixture(t)

	id, err := f.project.CreateProposal(adminA, ledger.AdminWithdraw{
		Asset:     assets.Native,
		Amount:    uint256.NewInt(10),
		Recipient: outsider,
	}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	wantCode(t, f.project.ExecuteProposal(adminA, id), ledger.CodeInsufficientBalance)

	// Fund the pool and retry: still pending, so it can now execute.
	f.bank.Mint(assets.Native, payerU1, uint256.NewInt(10))
	req, sig := f.payment(10, "late-funding")
	if err := f.project.Pay(payerU1, req, sig); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("retry ExecuteProposal: %v", err)
	}
}

func TestProposal_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		if _, err := f.project.CreateProposal(adminA, ledger.Pause{}, f.deadline()); err != nil {
			t.Fatalf("CreateProposal: %v", err)
		}
	}

	page, err := f.project.Proposals(1, 2)
	if err != nil {
		t.Fatalf("Proposals: %v", err)
	}
	if len(page) != 2 || page[0].ID != 3 || page[1].ID != 2 {
		t.Fatalf("page = %+v, want ids 3,2", page)
	}

	// Clamped tail page.
	page, err = f.project.Proposals(3, 10)
	if err != nil {
		t.Fatalf("Proposals: %v", err)
	}
	if len(page) != 2 || page[0].ID != 1 || page[1].ID != 0 {
		t.Fatalf("tail page = %+v, want ids 1,0", page)
	}

	// Offset past the end.
	page, err = f.project.Proposals(5, 2)
	if err != nil {
		t.Fatalf("Proposals: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d entries", len(page))
	}

	// Negative paging arguments are a request fault with their own code.
	if _, err := f.project.Proposals(-1, 2); !ledger.IsCode(err, ledger.CodeInvalidPagination) {
		t.Fatalf("Proposals(-1, 2): %v", err)
	}
	if _, err := f.project.Proposals(0, -1); !ledger.IsCode(err, ledger.CodeInvalidPagination) {
		t.Fatalf("Proposals(0, -1): %v", err)
	}
}

func TestProposal_NotFound(t *testing.T) {
	f := newFixture(t)
	wantCode(t, f.project.ConfirmProposal(adminA, 42), ledger.CodeProposalNotFound)
	if _, err := f.project.Proposal(42); !ledger.IsCode(err, ledger.CodeProposalNotFound) {
		t.Fatalf("Proposal(42): %v", err)
	}
}

func TestProposal_UnpauseRestoresSettlement(t *testing.T) {
	f := newFixture(t)
	f.pause(t)

	id, err := f.project.CreateProposal(adminA, ledger.Unpause{}, f.deadline())
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := f.project.ExecuteProposal(adminA, id); err != nil {
		t.Fatalf("ExecuteProposal: %v", err)
	}

	f.bank.Mint(assets.Native, payerU1, uint256.NewInt(10))
	req, sig := f.payment(10, "resumed")
	if err := f.project.Pay(payerU1, req, sig); err != nil {
		t.Fatalf("Pay after unpause: %v", err)
	}
}

func acctN(b byte) account.Account {
	var a account.Account
	a[account.Size-1] = b
	return a
}
