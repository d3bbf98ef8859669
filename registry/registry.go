// Package registry is the factory for project instances and the holder of
// the global fee configuration.
//
// The registry is deliberately thin: it derives project identifiers, wires
// each new Project to the shared collaborators (fee config, transfer
// capability, audit recorder) and indexes projects by id. All custody
// semantics live in the ledger package.
package registry

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

// Config assembles a Registry.
type Config struct {
	// FeeRate is the payment fee in basis points (0..1000).
	FeeRate uint32
	// FeeVault receives extracted fees. Required when FeeRate > 0.
	FeeVault account.Account
	// Bank is the transfer capability handed to every project.
	Bank assets.Transfer
	// Recorder receives audit records from every project. Optional.
	Recorder ledger.Recorder
	// Now supplies the clock handed to every project. Defaults to time.Now.
	Now func() time.Time
}

// Registry creates and indexes projects.
type Registry struct {
	mu       sync.RWMutex
	feeRate  uint32
	feeVault account.Account
	bank     assets.Transfer
	recorder ledger.Recorder
	now      func() time.Time
	projects map[account.Account]*ledger.Project
	seq      uint64
}

// New validates cfg and returns an empty Registry.
func New(cfg Config) (*Registry, error) {
	if cfg.FeeRate > ledger.MaxFeeRate {
		return nil, fmt.Errorf("registry: fee rate %d above %d basis points", cfg.FeeRate, ledger.MaxFeeRate)
	}
	if cfg.FeeRate > 0 && cfg.FeeVault.IsZero() {
		return nil, fmt.Errorf("registry: fee vault required for a non-zero fee rate")
	}
	if cfg.Bank == nil {
		return nil, fmt.Errorf("registry: transfer capability is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		feeRate:  cfg.FeeRate,
		feeVault: cfg.FeeVault,
		bank:     cfg.Bank,
		recorder: cfg.Recorder,
		now:      now,
		projects: make(map[account.Account]*ledger.Project),
	}, nil
}

// FeeRate implements ledger.FeeConfig. Projects read it on every payment.
func (r *Registry) FeeRate() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.feeRate
}

// FeeVault implements ledger.FeeConfig.
func (r *Registry) FeeVault() account.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.feeVault
}

// SetFees updates the global fee configuration. The change applies to the
// next payment of every project; nothing is cached.
func (r *Registry) SetFees(rate uint32, vault account.Account) error {
	if rate > ledger.MaxFeeRate {
		return fmt.Errorf("registry: fee rate %d above %d basis points", rate, ledger.MaxFeeRate)
	}
	if rate > 0 && vault.IsZero() {
		return fmt.Errorf("registry: fee vault required for a non-zero fee rate")
	}
	r.mu.Lock()
	r.feeRate = rate
	r.feeVault = vault
	r.mu.Unlock()
	return nil
}

// CreateProject derives a fresh project id and instantiates the project.
// The id is keccak-derived from the creator and a registry sequence number,
// so ids are unique per registry and stable for a given creation order.
func (r *Registry) CreateProject(creator account.Account, name string, signer account.Account, admins []account.Account, threshold int) (*ledger.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := deriveProjectID(creator, r.seq)
	project, err := ledger.New(ledger.Config{
		ID:        id,
		Name:      name,
		Creator:   creator,
		Signer:    signer,
		Admins:    admins,
		Threshold: threshold,
		Fees:      r,
		Bank:      r.bank,
		Recorder:  r.recorder,
		Now:       r.now,
	})
	if err != nil {
		return nil, err
	}
	r.seq++
	r.projects[id] = project
	return project, nil
}

// Project returns the project with the given id.
func (r *Registry) Project(id account.Account) (*ledger.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	return p, ok
}

// Count returns the number of projects created so far.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

func deriveProjectID(creator account.Account, seq uint64) account.Account {
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], seq)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("paythefly.project"))
	h.Write(creator[:])
	h.Write(seqBytes[:])
	id, _ := account.FromBytes(h.Sum(nil))
	return id
}
