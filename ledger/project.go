// Package ledger implements the per-project governance and settlement
// engine: a quorum-gated proposal state machine over a bounded admin set,
// and signature-authorized payment/withdrawal settlement with replay
// protection, fee extraction and strict balance segregation.
//
// A Project is an owned aggregate: all state is reachable only through its
// entry points, every entry point either fully applies or has no effect, and
// a reentrancy guard rejects any call made while another call holds the
// project (including callbacks from the transfer capability).
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// MaxNameLen bounds the project display name in bytes.
const MaxNameLen = 64

// FeeConfig supplies the global fee parameters. It is read at payment time,
// never cached, so registry-level changes apply to the next payment.
type FeeConfig interface {
	// FeeRate returns the payment fee in basis points (0..1000).
	FeeRate() uint32
	// FeeVault returns the account fees are routed to.
	FeeVault() account.Account
}

// FeeDenominator converts a fee rate in basis points to a fraction.
const FeeDenominator = 10000

// MaxFeeRate is the highest fee rate a FeeConfig may report (10%).
const MaxFeeRate = 1000

// Config assembles a Project. ID, Creator and the initial Signer, Admins and
// Threshold come from the factory; Fees, Bank and Recorder are the external
// collaborators.
type Config struct {
	ID        account.Account
	Name      string
	Creator   account.Account
	Signer    account.Account
	Admins    []account.Account
	Threshold int
	Fees      FeeConfig
	Bank      assets.Transfer
	Recorder  Recorder

	// Now supplies the current time for deadline checks. Defaults to
	// time.Now. Tests inject a fixed clock.
	Now func() time.Time
}

// Project is one tenant's isolated custody ledger.
type Project struct {
	id      account.Account
	creator account.Account

	guard callGuard

	// Mutable state below is touched only while the guard is held.
	name        string
	signer      account.Account
	paused      bool
	admins      *adminSet
	threshold   int
	proposals   map[uint64]*proposal
	nextID      uint64
	pendingOpen int
	balances    *balanceBook
	paySerials  *serialSet
	wdSerials   *serialSet

	fees     FeeConfig
	bank     assets.Transfer
	recorder Recorder
	now      func() time.Time
}

// New validates cfg and returns a Project.
func New(cfg Config) (*Project, error) {
	if cfg.ID.IsZero() {
		return nil, newError(KindPrecond, CodeInvalidConfig, "project id is zero")
	}
	if cfg.Creator.IsZero() {
		return nil, newError(KindPrecond, CodeInvalidConfig, "creator is zero")
	}
	if cfg.Signer.IsZero() {
		return nil, newError(KindPrecond, CodeInvalidAddress, "signer is zero")
	}
	if err := checkName(cfg.Name); err != nil {
		return nil, err
	}
	if cfg.Fees == nil || cfg.Bank == nil {
		return nil, newError(KindPrecond, CodeInvalidConfig, "fee config and transfer capability are required")
	}
	if len(cfg.Admins) == 0 {
		return nil, newError(KindPrecond, CodeInvalidConfig, "at least one admin is required")
	}
	if len(cfg.Admins) > MaxAdmins {
		return nil, newError(KindPrecond, CodeTooManyAdmins, fmt.Sprintf("more than %d admins", MaxAdmins))
	}
	admins := newAdminSet()
	for _, a := range cfg.Admins {
		if a.IsZero() {
			return nil, newError(KindPrecond, CodeInvalidAddress, "admin is zero")
		}
		if !admins.add(a) {
			return nil, newError(KindPrecond, CodeAdminExists, "duplicate admin "+a.String())
		}
	}
	if cfg.Threshold < 1 || cfg.Threshold > admins.len() {
		return nil, newError(KindPrecond, CodeInvalidThreshold,
			fmt.Sprintf("threshold %d outside 1..%d", cfg.Threshold, admins.len()))
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Project{
		id:         cfg.ID,
		creator:    cfg.Creator,
		name:       cfg.Name,
		signer:     cfg.Signer,
		admins:     admins,
		threshold:  cfg.Threshold,
		proposals:  make(map[uint64]*proposal),
		balances:   newBalanceBook(),
		paySerials: newSerialSet(),
		wdSerials:  newSerialSet(),
		fees:       cfg.Fees,
		bank:       cfg.Bank,
		recorder:   recorder,
		now:        now,
	}, nil
}

// callGuard is an explicit held/not-held reentrancy lock. A call that finds
// the guard held fails fast instead of queueing; ordering between outside
// callers belongs to the surrounding environment (the RPC layer serializes
// per project).
type callGuard struct {
	mu   sync.Mutex
	held bool
}

func (g *callGuard) acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return newError(KindPrecond, CodeReentrantCall, "project is busy with another call")
	}
	g.held = true
	return nil
}

func (g *callGuard) release() {
	g.mu.Lock()
	g.held = false
	g.mu.Unlock()
}

func (p *Project) unixNow() int64 {
	return p.now().Unix()
}

func checkName(name string) error {
	if name == "" {
		return newError(KindPrecond, CodeInvalidName, "name is empty")
	}
	if len(name) > MaxNameLen {
		return newError(KindPrecond, CodeInvalidName, "name exceeds 64 bytes")
	}
	return nil
}

func (p *Project) requireAdmin(caller account.Account) error {
	if !p.admins.contains(caller) {
		return newError(KindAuth, CodeNotAdmin, caller.String()+" is not an admin")
	}
	return nil
}

func (p *Project) requireActive() error {
	if p.paused {
		return newError(KindPrecond, CodeProjectPaused, "project is paused")
	}
	return nil
}

// SetName updates the display name. Any admin may call it: renaming is
// reversible and moves no funds, so it bypasses governance.
func (p *Project) SetName(caller account.Account, name string) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// Info is a read-only snapshot of project metadata.
type Info struct {
	ID               account.Account
	Name             string
	Creator          account.Account
	Signer           account.Account
	Paused           bool
	Admins           []account.Account
	Threshold        int
	ProposalCount    uint64
	PendingProposals int
}

// Info returns the current project metadata.
func (p *Project) Info() (Info, error) {
	if err := p.guard.acquire(); err != nil {
		return Info{}, err
	}
	defer p.guard.release()

	return Info{
		ID:               p.id,
		Name:             p.name,
		Creator:          p.creator,
		Signer:           p.signer,
		Paused:           p.paused,
		Admins:           p.admins.accounts(),
		Threshold:        p.threshold,
		ProposalCount:    p.nextID,
		PendingProposals: p.pendingOpen,
	}, nil
}

// ID returns the immutable project identifier.
func (p *Project) ID() account.Account {
	return p.id
}

// IsAdmin reports committee membership.
func (p *Project) IsAdmin(a account.Account) (bool, error) {
	if err := p.guard.acquire(); err != nil {
		return false, err
	}
	defer p.guard.release()
	return p.admins.contains(a), nil
}

// Balances returns the balance pair for one asset.
func (p *Project) Balances(asset assets.Asset) (BalancePair, error) {
	if err := p.guard.acquire(); err != nil {
		return BalancePair{}, err
	}
	defer p.guard.release()
	return p.balances.get(asset), nil
}

// BalancesBatch returns balance pairs for several assets in request order.
func (p *Project) BalancesBatch(assetList []assets.Asset) ([]BalancePair, error) {
	if err := p.guard.acquire(); err != nil {
		return nil, err
	}
	defer p.guard.release()
	out := make([]BalancePair, len(assetList))
	for i, asset := range assetList {
		out[i] = p.balances.get(asset)
	}
	return out, nil
}

// SerialUsed reports whether serial has been consumed by either flow.
func (p *Project) SerialUsed(serial string) (bool, error) {
	if err := p.guard.acquire(); err != nil {
		return false, err
	}
	defer p.guard.release()
	return p.paySerials.contains(serial) || p.wdSerials.contains(serial), nil
}

// Proposal returns a snapshot of one proposal.
func (p *Project) Proposal(id uint64) (ProposalInfo, error) {
	if err := p.guard.acquire(); err != nil {
		return ProposalInfo{}, err
	}
	defer p.guard.release()
	prop, ok := p.proposals[id]
	if !ok {
		return ProposalInfo{}, newError(KindGovernance, CodeProposalNotFound, fmt.Sprintf("proposal %d not found", id))
	}
	return prop.snapshot(p.admins), nil
}

// Proposals lists proposals newest-first: for offset o over total n, the
// first entry has id n-o-1 and ids descend for up to limit entries.
func (p *Project) Proposals(offset, limit int) ([]ProposalInfo, error) {
	if err := p.guard.acquire(); err != nil {
		return nil, err
	}
	defer p.guard.release()

	if offset < 0 || limit < 0 {
		return nil, newError(KindPrecond, CodeInvalidPagination, "offset and limit must be non-negative")
	}
	total := int(p.nextID)
	if offset >= total {
		return nil, nil
	}
	first := total - offset - 1
	if limit > first+1 {
		limit = first + 1
	}
	out := make([]ProposalInfo, 0, limit)
	for i := 0; i < limit; i++ {
		prop := p.proposals[uint64(first-i)]
		out = append(out, prop.snapshot(p.admins))
	}
	return out, nil
}

// HasConfirmed reports whether admin's confirmation on proposal id is
// currently effective (stored and the confirmer is still an admin).
func (p *Project) HasConfirmed(id uint64, admin account.Account) (bool, error) {
	if err := p.guard.acquire(); err != nil {
		return false, err
	}
	defer p.guard.release()
	prop, ok := p.proposals[id]
	if !ok {
		return false, newError(KindGovernance, CodeProposalNotFound, fmt.Sprintf("proposal %d not found", id))
	}
	return prop.confirmed[admin] && p.admins.contains(admin), nil
}
