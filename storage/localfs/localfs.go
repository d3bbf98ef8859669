// Package localfs is a filesystem-backed audit archive.
package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"github.com/paythefly/PayTheFlyContract-sub001/cidutil"
	"github.com/paythefly/PayTheFlyContract-sub001/storage"
)

// Archive stores audit records immutably on the local filesystem, keyed
// strictly by CID. It is offline and deterministic: it never uses the
// network and never depends on wall-clock time.
type Archive struct {
	root string
}

// New constructs an archive rooted at root. The directory is created if needed.
func New(root string) (*Archive, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Archive{root: root}, nil
}

func (a *Archive) Put(b []byte) (cid.Cid, error) {
	id, err := cidutil.RecordCID(b)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}

	path := a.pathFor(id)
	if existing, rerr := os.ReadFile(path); rerr == nil {
		if !bytes.Equal(existing, b) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	// Records become visible atomically: write to a temp file in the same
	// directory, then rename. A concurrent Put of the same CID renames the
	// same bytes, so the race is harmless.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rec-*")
	if err != nil {
		return cid.Undef, err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Close(); err != nil {
		return cid.Undef, err
	}
	if err := os.Chmod(tmp.Name(), 0o444); err != nil {
		return cid.Undef, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

func (a *Archive) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := os.ReadFile(a.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	got, err := cidutil.RecordCID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (a *Archive) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(a.pathFor(id))
	return err == nil
}

// pathFor shards on the CID suffix: CIDv1 strings for one codec share a long
// common prefix, so a prefix shard would collapse into a single directory.
func (a *Archive) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(a.root, s)
	}
	return filepath.Join(a.root, s[len(s)-2:], s)
}
